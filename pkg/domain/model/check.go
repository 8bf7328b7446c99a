package model

import (
	"strconv"
	"time"
)

// PRInfo is the part of a pull request event the label check needs.
type PRInfo struct {
	Owner   string
	Repo    string
	Number  int
	HeadSHA string
	Action  string
	Sender  string
	Labels  []string
}

// RepoFullName returns "owner/repo".
func (p *PRInfo) RepoFullName() string {
	return p.Owner + "/" + p.Repo
}

// CheckResult is the outcome of evaluating a changelog policy against the
// labels attached to a pull request.
type CheckResult struct {
	Passed  bool
	Matched []string // PR labels found in the allowed set, in PR order
	Allowed []string // the full allowed set the labels were compared against
}

// CheckRecord is a persisted record of one processed check. Records double
// as idempotency markers: delivery records guard against webhook
// redelivery, comment records guard against repeated comments on the same
// head commit.
type CheckRecord struct {
	ID         string    `firestore:"id"`
	Repository string    `firestore:"repository"`
	Number     int       `firestore:"number"`
	HeadSHA    string    `firestore:"head_sha"`
	Passed     bool      `firestore:"passed"`
	CheckedAt  time.Time `firestore:"checked_at"`
}

// DeliveryRecordID keys a record by webhook delivery ID.
func DeliveryRecordID(deliveryID string) string {
	return "delivery:" + deliveryID
}

// CommentRecordID keys a record by the commented head commit.
func CommentRecordID(repo string, number int, headSHA string) string {
	return "comment:" + repo + ":" + strconv.Itoa(number) + ":" + headSHA
}
