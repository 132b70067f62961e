// Package credential implements the periodic credential refresh process.
//
// 🎯 Purpose:
// Rotate short-lived tokens into the active configuration and report them
// to an externally configured endpoint, without ever surfacing errors to
// the user when the feature is unconfigured or the endpoint is down.
//
//	┌──────────┐   tick    ┌────────────┐  substitute  ┌─────────────┐
//	│ Refresher │ ────────► │ env config │ ───────────► │ active file │
//	└─────┬────┘           └────────────┘              └─────────────┘
//	      │ POST {token, userInfo, timestamp}
//	      ▼
//	┌──────────────┐
//	│ endpoint.url │  (absent ⇒ send is skipped, silently)
//	└──────────────┘
//
// 🔄 Flow:
//  1. Resolve the current environment (stale values corrected to the first)
//  2. Generate a fresh UUIDv4 and substitute the token placeholder from the
//     environment's source file into the active configuration
//  3. If a global endpoint URL is configured, POST the credential record
//
// ⚡ Key Responsibilities:
//   - One refresh loop at a time: Start returns the live Handle when called
//     again, Stop is idempotent
//   - Immediate first execution on start, then one run per interval
//   - Best effort throughout: RefreshNow never returns an error, failed
//     sends are logged and swallowed
//
// 📝 Design Philosophy:
// The endpoint file is the feature switch. No file, no network traffic, no
// noise. Every tick re-reads the filesystem so external edits to the
// properties file, the environment configs, or the endpoint URL take effect
// on the next run without a restart.
package credential
