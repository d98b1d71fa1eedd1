// Package dispatcher routes actions to handlers and applies their results.
//
// Actions are namespaced: "cursor.nextBoundary" is routed to the handler
// registered for the "cursor" namespace. Exact-name handlers in the
// Registry are consulted when no namespace handler claims an action.
//
// A dispatch runs pre hooks, the handler (with panic recovery), then
// applies the result: mode changes go to the ModeSwitcher and
// FollowCursor scrolls the engine's view. Post hooks see the final result.
package dispatcher
