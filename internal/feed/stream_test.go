package feed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<Records>
  <CountryName code="USA" name="United States"/>
  <Person id="100" action="add" date="2026-01-15">
    <NameDetails>
      <Name NameType="Primary Name">
        <NameValue>
          <FirstName>Jane</FirstName>
          <Surname>Doe</Surname>
        </NameValue>
      </Name>
    </NameDetails>
  </Person>
  <Person id="101" action="amend">
    <Gender>Male</Gender>
  </Person>
</Records>`

func TestStreamDispatchOrder(t *testing.T) {
	s := NewStream(32)

	var seen []string
	s.Subscribe("CountryName", func(_ context.Context, n *Node) {
		seen = append(seen, "country:"+n.Attr("code"))
	})
	s.Subscribe("Person", func(_ context.Context, n *Node) {
		seen = append(seen, "person:"+n.Attr("id"))
	})

	count, err := s.Run(context.Background(), strings.NewReader(sampleFeed))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, []string{"country:USA", "person:100", "person:101"}, seen)
}

func TestStreamBuildsSubtree(t *testing.T) {
	s := NewStream(32)

	var got *Node
	s.Subscribe("Person", func(_ context.Context, n *Node) {
		if got == nil {
			got = n
		}
	})

	_, err := s.Run(context.Background(), strings.NewReader(sampleFeed))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "100", got.Attr("id"))
	nameValue := got.Child("NameDetails").Child("Name").Child("NameValue")
	require.NotNil(t, nameValue)
	assert.Equal(t, "Jane", nameValue.Child("FirstName").Text)
	assert.Equal(t, "Doe", nameValue.Child("Surname").Text)
}

func TestStreamOnElementHook(t *testing.T) {
	s := NewStream(32)
	s.Subscribe("Person", func(_ context.Context, _ *Node) {})

	var counts []int64
	s.OnElement(func(c int64) { counts = append(counts, c) })

	_, err := s.Run(context.Background(), strings.NewReader(sampleFeed))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, counts)
}

func TestStreamMalformedXML(t *testing.T) {
	s := NewStream(32)
	s.Subscribe("Person", func(_ context.Context, _ *Node) {})

	_, err := s.Run(context.Background(), strings.NewReader(`<Records><Person id="1"><Unclosed></Records>`))
	require.Error(t, err)
}

func TestStreamDepthBound(t *testing.T) {
	s := NewStream(2)
	s.Subscribe("Person", func(_ context.Context, _ *Node) {})

	deep := `<Records><Person><A><B><C>x</C></B></A></Person></Records>`
	_, err := s.Run(context.Background(), strings.NewReader(deep))
	require.Error(t, err)
}

func TestStreamContextCancel(t *testing.T) {
	s := NewStream(32)
	ctx, cancel := context.WithCancel(context.Background())
	s.Subscribe("Person", func(_ context.Context, _ *Node) { cancel() })

	_, err := s.Run(ctx, strings.NewReader(sampleFeed))
	require.Error(t, err)
}

func TestNodeEach(t *testing.T) {
	s := NewStream(32)
	var got *Node
	s.Subscribe("Entity", func(_ context.Context, n *Node) { got = n })

	src := `<Records><Entity id="5"><Addr/><Addr/><Other/></Entity></Records>`
	_, err := s.Run(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Each("Addr"), 2)
	assert.Nil(t, got.Child("Missing"))
}
