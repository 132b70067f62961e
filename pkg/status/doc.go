/*
Package status manages file storage and user-facing status reporting.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|   Files   |           | Reporter |
	| (Storage) |           | (UI/UX)  |
	+-----------+           +----------+

🎯 Purpose:
- Performs all file system writes for the tool (atomic, full-file)
- Copies environment configs to the active location
- Reports changes and validation findings in a user-friendly format

⚡ Key Responsibilities:
- Atomic writes (temp file + rename)
- Whole-file copies with checksums
- Existence checks
- Console feedback with consistent prefixes

📝 Design Philosophy:
Managed files are shared, externally editable resources. The package takes
no locks on them: every read is authoritative at read time and every write
replaces the whole file, which keeps corruption windows to the duration of
a single OS-level rename.
*/
package status
