// Package camtparser populates the domain model from CAMT.052/053/054 XML.
//
// Extraction is tolerant by design: real-world bank exports are inconsistent
// per field, so missing elements, unparseable decimals and malformed dates
// resolve to explicit defaults and never abort the document. Only structural
// problems (no root, unrecognized payload) fail the whole parse, and then no
// partial document is returned.
package camtparser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/camt-export/internal/models"
	"fjacquet/camt-export/internal/xmlnav"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var strictAmounts bool

// SetStrictAmounts toggles strict amount handling: unparseable decimal
// values are reported at error level instead of silently degrading to zero.
// The affected cell still becomes zero either way.
func SetStrictAmounts(strict bool) {
	strictAmounts = strict
}

// ErrEmptyDocument reports XML without a document element.
var ErrEmptyDocument = errors.New("empty document")

// ErrUnsupportedRoot reports a document whose payload element is none of
// BkToCstmrStmt, BkToCstmrDbtCdtNtfctn or BkToCstmrAcctRpt.
var ErrUnsupportedRoot = errors.New("unsupported CAMT root")

// payloadNames are the three recognized bank-to-customer payload elements.
var payloadNames = []string{"BkToCstmrStmt", "BkToCstmrDbtCdtNtfctn", "BkToCstmrAcctRpt"}

// ParseFile parses a CAMT XML file into the domain model.
func ParseFile(xmlFile string) (*models.Document, error) {
	log.WithField("file", xmlFile).Info("Parsing CAMT XML file")
	tree := etree.NewDocument()
	if err := tree.ReadFromFile(xmlFile); err != nil {
		return nil, fmt.Errorf("error reading XML file: %w", err)
	}
	return Parse(tree)
}

// ParseReader parses CAMT XML from a stream.
func ParseReader(r io.Reader) (*models.Document, error) {
	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("error reading XML stream: %w", err)
	}
	return Parse(tree)
}

// ParseBytes parses CAMT XML from an in-memory buffer.
func ParseBytes(data []byte) (*models.Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("error parsing XML: %w", err)
	}
	return Parse(tree)
}

// Parse extracts the domain model from an already built XML tree. The tree is
// read only; the returned document owns all of its data.
func Parse(tree *etree.Document) (*models.Document, error) {
	root := tree.Root()
	if root == nil {
		return nil, ErrEmptyDocument
	}

	payload := findPayload(root)
	kind := detectKind(payload)
	if kind == models.DocKindUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRoot, root.Tag)
	}

	doc := &models.Document{Kind: kind}

	// Optional GrpHdr above the statements.
	var hdr *models.GroupHeader
	if g := xmlnav.Child(payload, "GrpHdr"); g != nil {
		h := parseGroupHeader(g)
		hdr = &h
	}

	for _, n := range payload.ChildElements() {
		switch n.Tag {
		case "Stmt", "Ntfctn", "Rpt":
			doc.Statements = append(doc.Statements, parseStatement(n, hdr))
		}
	}

	log.WithFields(logrus.Fields{
		"kind":       kind.String(),
		"statements": len(doc.Statements),
	}).Info("Parsed CAMT document")
	return doc, nil
}

// findPayload locates the payload element: the root itself, then a direct
// child, then the first matching descendant in document order. Some banks
// wrap the standard Document element in vendor envelopes; the descendant
// search tolerates that.
func findPayload(root *etree.Element) *etree.Element {
	if isPayloadName(root.Tag) {
		return root
	}
	for _, c := range root.ChildElements() {
		if isPayloadName(c.Tag) {
			return c
		}
	}
	return xmlnav.DescAny(root, payloadNames...)
}

func isPayloadName(tag string) bool {
	for _, n := range payloadNames {
		if tag == n {
			return true
		}
	}
	return false
}

func detectKind(payload *etree.Element) models.DocKind {
	if payload == nil {
		return models.DocKindUnknown
	}
	switch payload.Tag {
	case "BkToCstmrStmt":
		return models.DocKindStatement
	case "BkToCstmrDbtCdtNtfctn":
		return models.DocKindNotification
	case "BkToCstmrAcctRpt":
		return models.DocKindAccountReport
	default:
		return models.DocKindUnknown
	}
}

// ValidateFormat checks whether a file looks like a supported CAMT XML file.
// It is a cheap sniff for batch tooling, not schema validation: invalid XML
// or a missing payload element yields false without an error.
func ValidateFormat(xmlFile string) (bool, error) {
	log.WithField("file", xmlFile).Debug("Validating CAMT format")

	f, err := os.Open(xmlFile)
	if err != nil {
		return false, fmt.Errorf("error opening XML file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(f)
	if err != nil {
		log.WithError(err).Debug("File is not valid XML")
		return false, nil
	}

	for _, name := range payloadNames {
		path := xmlpath.MustCompile("//" + name)
		if path.Exists(root) {
			return true, nil
		}
	}
	log.Debug("No CAMT payload element found")
	return false, nil
}
