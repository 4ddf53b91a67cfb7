package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_Hierarchy(t *testing.T) {
	tab := NewWindow("tab", "https://a.example/")
	frame := NewWindow("frame", "https://b.example/")
	nested := NewWindow("nested", "https://c.example/")
	tab.AppendFrame(frame)
	frame.AppendFrame(nested)

	assert.True(t, tab.IsTop())
	assert.False(t, nested.IsTop())
	assert.Same(t, tab, nested.Top())
	assert.Same(t, frame, nested.Parent())
	assert.Equal(t, []*Window{frame}, tab.Frames())

	other := NewWindow("other", "https://d.example/")
	other.AppendFrame(frame)
	assert.Empty(t, tab.Frames())
	assert.Same(t, other, nested.Top())

	frame.Detach()
	assert.True(t, frame.IsTop())
	assert.Empty(t, other.Frames())
	assert.Same(t, frame, nested.Top())
}

func TestWindow_NavigateReplacesDocument(t *testing.T) {
	w := NewWindow("tab", "https://a.example/")
	before := w.Document()

	doc := w.Navigate("https://b.example/")
	assert.NotSame(t, before, doc)
	assert.Same(t, doc, w.Document())
	assert.Equal(t, "https://b.example/", doc.URL)
	assert.Empty(t, doc.Root.Children())
}

func TestNode_Tree(t *testing.T) {
	root := NewNode("", "#document")
	div := NewNode("div", "div")
	img := NewNode("img", "img")
	span := NewNode("span", "span")
	root.AppendChild(div)
	div.AppendChild(img)
	div.AppendChild(span)

	var visited []string
	root.Walk(func(n *Node) { visited = append(visited, n.Tag) })
	assert.Equal(t, []string{"#document", "div", "img", "span"}, visited)

	root.AppendChild(img)
	assert.Same(t, root, img.Parent())
	assert.Equal(t, []*Node{span}, div.Children())

	assert.False(t, div.RemoveChild(img))
	assert.True(t, root.RemoveChild(img))
	assert.Nil(t, img.Parent())
	assert.Equal(t, []*Node{div}, root.Children())
}
