package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitInvokesListenersInRegistrationOrder(t *testing.T) {
	e := NewEmitter()
	var order []int
	e.On(TopicDocumentChanged, func(interface{}) { order = append(order, 1) })
	e.On(TopicDocumentChanged, func(interface{}) { order = append(order, 2) })
	e.On(TopicDocumentChanged, func(interface{}) { order = append(order, 3) })

	e.Emit(TopicDocumentChanged, nil)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestOffRemovesByIdentity(t *testing.T) {
	e := NewEmitter()
	var fired bool
	id := e.On(TopicDocumentChanged, func(interface{}) { fired = true })
	e.Off(TopicDocumentChanged, id)

	e.Emit(TopicDocumentChanged, nil)

	assert.False(t, fired)
}

func TestEmitIsSynchronous(t *testing.T) {
	e := NewEmitter()
	var seen interface{}
	e.On(TopicDocumentChanged, func(p interface{}) { seen = p })

	e.Emit(TopicDocumentChanged, "payload")

	assert.Equal(t, "payload", seen)
}

func TestDistinctTopicsDoNotCrossFire(t *testing.T) {
	e := NewEmitter()
	var docFired, hlFired bool
	e.On(TopicDocumentChanged, func(interface{}) { docFired = true })
	e.On(TopicHighlightsChanged, func(interface{}) { hlFired = true })

	e.Emit(TopicDocumentChanged, nil)

	assert.True(t, docFired)
	assert.False(t, hlFired)
}
