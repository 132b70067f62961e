/*
Package operation implements the environment switch state machine.

	+----------+     +-----------+     +------------+
	|  Loader  | --> |  Operator | --> | active file|
	| (env)    |     | (switch)  |     | + endpoint |
	+----------+     +-----+-----+     +------------+
	                       |
	                 +-----+-----+
	                 |   State   |
	                 | (per-ws)  |
	                 +-----------+

🎯 Purpose:
- Orchestrates listing, selecting, and cycling environments
- Records switch intent before touching any file
- Surfaces render metadata (tier, current marker, missing configs)

🔄 Flow:
1. Load the collection (never fails, never empty)
2. Persist the new current value
3. Copy the environment's config to the active location
4. Copy the optional endpoint companion alongside
5. Trigger the one-shot credential send when both copies landed

⚡ Key Responsibilities:
- Deterministic cycle order driven by file positions
- Stale persisted values corrected on display paths only
- Apply failures reported without rolling back the recorded intent

🤝 Interfaces:
- CredentialSender: post-switch send hook, satisfied by credential.Refresher
- status.FileManager: all file reads, writes, and copies

📝 Design Philosophy:
The operator owns ordering, nothing else. Parsing lives in env, persistence
in state, file mechanics in status. Every public method re-reads the
filesystem so external edits are picked up on the next call rather than
cached away.

🔍 Example:

	op, err := operation.New(operation.Options{Loader: loader, State: store, Files: files, Paths: paths})
	tr, err := op.Select(ctx, "Prod")
*/
package operation
