// Package notifier provides notification interfaces and implementations
// for newly discovered course events.
//
// The webhook notifier is the channel used by the check pipeline; delivery
// failures there are recovered locally so the feed and seen-set updates are
// never blocked. The Twitter notifier serves the standalone tweet command.
package notifier
