package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewAuthorSnapshot(t *testing.T) {
	u := &User{Id: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com"}
	snap := NewAuthorSnapshot(u)

	assert.Equal(t, u.Id, snap.AuthorId)
	assert.Equal(t, "alice", snap.Username)
	assert.Equal(t, "alice@example.com", snap.Email)
}

// A snapshot is a value copy: mutating the parent afterwards must not change it.
func TestSnapshotIsValueCopy(t *testing.T) {
	c := &BoardCategory{Id: primitive.NewObjectID(), Topic: "C1", SortOrder: 1}
	snap := NewCategorySnapshot(c)

	c.Topic = "C1-renamed"

	assert.Equal(t, "C1", snap.Topic)
	assert.Equal(t, c.Id, snap.CategoryId)
}

func TestNewBoardSnapshot(t *testing.T) {
	b := &Board{Id: primitive.NewObjectID(), Topic: "Intro", Description: "greetings"}
	snap := NewBoardSnapshot(b)

	assert.Equal(t, b.Id, snap.BoardId)
	assert.Equal(t, "Intro", snap.Topic)

	b.Topic = "Intro v2"
	assert.Equal(t, "Intro", snap.Topic)
}

func TestNewThreadSnapshot(t *testing.T) {
	th := &Thread{Id: primitive.NewObjectID(), Topic: "Hello"}
	snap := NewThreadSnapshot(th)

	assert.Equal(t, th.Id, snap.ThreadId)
	assert.Equal(t, "Hello", snap.Topic)
}
