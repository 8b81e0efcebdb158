package domain

// Snapshots are denormalized value copies of a parent's display fields, embedded
// in child documents at create/move time. Renaming a parent afterwards does not
// touch snapshots already stored below it; callers needing the current name must
// resolve the parent by id.

type AuthorSnapshot struct {
	AuthorId UserId   `json:"authorId" bson:"authorId"`
	Username Username `json:"username" bson:"username"`
	Email    Email    `json:"email" bson:"email"`
}

type CategorySnapshot struct {
	CategoryId CategoryId `json:"categoryId" bson:"categoryId"`
	Topic      Topic      `json:"topic" bson:"topic"`
}

type BoardSnapshot struct {
	BoardId BoardId `json:"boardId" bson:"boardId"`
	Topic   Topic   `json:"topic" bson:"topic"`
}

type ThreadSnapshot struct {
	ThreadId ThreadId `json:"threadId" bson:"threadId"`
	Topic    Topic    `json:"topic" bson:"topic"`
}

func NewAuthorSnapshot(u *User) AuthorSnapshot {
	return AuthorSnapshot{AuthorId: u.Id, Username: u.Username, Email: u.Email}
}

func NewCategorySnapshot(c *BoardCategory) CategorySnapshot {
	return CategorySnapshot{CategoryId: c.Id, Topic: c.Topic}
}

func NewBoardSnapshot(b *Board) BoardSnapshot {
	return BoardSnapshot{BoardId: b.Id, Topic: b.Topic}
}

func NewThreadSnapshot(t *Thread) ThreadSnapshot {
	return ThreadSnapshot{ThreadId: t.Id, Topic: t.Topic}
}
