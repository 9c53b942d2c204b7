// Package models defines the tagged handler result used by the router.
package models

// ResultKind tags a HandlerResult. The router pattern-matches on this tag
// instead of inferring sub-flow completion from missing scratch keys.
type ResultKind int

const (
	// ResultContinue keeps the sub-flow active with a replacement session.
	ResultContinue ResultKind = iota
	// ResultDone ends the sub-flow; the router appends the main menu and
	// resets the session to the menu state.
	ResultDone
	// ResultFailed reports a collaborator or internal failure. The router
	// leaves the session untouched so the user's next message retries.
	ResultFailed
)

// HandlerResult is the value every feature handler returns.
type HandlerResult struct {
	Kind    ResultKind
	Replies []string
	// Session is the total replacement session for ResultContinue.
	Session Session
	// Reason describes the failure for ResultFailed (logged, not shown).
	Reason string
}

// Continue builds a ResultContinue carrying the replacement session.
func Continue(session Session, replies ...string) HandlerResult {
	return HandlerResult{Kind: ResultContinue, Session: session, Replies: replies}
}

// Done builds a ResultDone with the handler's final replies.
func Done(replies ...string) HandlerResult {
	return HandlerResult{Kind: ResultDone, Replies: replies}
}

// Failed builds a ResultFailed. The reply, if any, is the user-safe
// fallback message shown in place of the handler's normal output.
func Failed(reason string, replies ...string) HandlerResult {
	return HandlerResult{Kind: ResultFailed, Reason: reason, Replies: replies}
}
