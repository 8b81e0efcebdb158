package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	topicPolicy   = bluemonday.StrictPolicy()
	contentPolicy = bluemonday.UGCPolicy()
)

// SanitizeTopic strips all markup from display names (category/board/thread topics,
// usernames). These fields end up embedded in snapshots, so they are cleaned once
// here instead of at every render site.
func SanitizeTopic(topic string) string {
	return strings.TrimSpace(topicPolicy.Sanitize(topic))
}

// SanitizePost keeps user-generated-content safe HTML in post bodies.
func SanitizePost(content string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(content))
}
