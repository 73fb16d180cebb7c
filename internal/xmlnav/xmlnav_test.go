package xmlnav

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc.Root()
}

func TestChildMatchesLocalNameOnly(t *testing.T) {
	root := parse(t, `<Root xmlns:ns="urn:x"><ns:A>one</ns:A><A>two</A></Root>`)

	a := Child(root, "A")
	require.NotNil(t, a)
	assert.Equal(t, "one", Text(a))
}

func TestChildAbsent(t *testing.T) {
	root := parse(t, `<Root><A/></Root>`)
	assert.Nil(t, Child(root, "B"))
	assert.Nil(t, Child(nil, "A"))
}

func TestDescDocumentOrder(t *testing.T) {
	root := parse(t, `<Root><X><Target>deep</Target></X><Target>shallow</Target></Root>`)

	// Depth-first in document order: the nested one comes first.
	assert.Equal(t, "deep", Text(Desc(root, "Target")))
}

func TestDescAnyFirstInDocumentOrder(t *testing.T) {
	root := parse(t, `<Root><B>second-name</B><A>first-name</A></Root>`)

	// B appears earlier in the document, so it wins even though A is listed
	// first.
	n := DescAny(root, "A", "B")
	require.NotNil(t, n)
	assert.Equal(t, "B", n.Tag)
}

func TestChildren(t *testing.T) {
	root := parse(t, `<Root><E>1</E><X/><E>2</E></Root>`)

	es := Children(root, "E")
	require.Len(t, es, 2)
	assert.Equal(t, "1", Text(es[0]))
	assert.Equal(t, "2", Text(es[1]))
	assert.Empty(t, Children(root, "Nope"))
}

func TestTextTrims(t *testing.T) {
	root := parse(t, "<Root><A>\n  padded \t</A></Root>")
	assert.Equal(t, "padded", ChildText(root, "A"))
	assert.Equal(t, "", Text(nil))
}

func TestDescText(t *testing.T) {
	root := parse(t, `<Root><A><B>inner</B></A></Root>`)
	assert.Equal(t, "inner", DescText(root, "B"))
	assert.Equal(t, "", DescText(root, "C"))
}

func TestAttrMatchesLocalName(t *testing.T) {
	root := parse(t, `<Root><Amt Ccy="EUR">1.00</Amt></Root>`)
	amt := Child(root, "Amt")
	assert.Equal(t, "EUR", Attr(amt, "Ccy"))
	assert.Equal(t, "", Attr(amt, "Nope"))
	assert.Equal(t, "", Attr(nil, "Ccy"))
}
