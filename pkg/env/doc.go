/*
Package env models named MCP environments and their declaration file.

	            +-------------+
	            | Properties  |
	            |   (text)    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Parser   |           |Validator|
	| (lines)   |           | (report)|
	+-----+-----+           +---------+
	      |
	+-----+------+
	| Collection |
	| (ordered)  |
	+------------+

🎯 Purpose:
- Parses the line-oriented properties file into ordered descriptors
- Validates text and collections into hard errors vs soft warnings
- Assigns position-derived tiers (safe/caution/critical)
- Loads with default synthesis and a guaranteed non-empty fallback

🔄 Flow:
1. Loader resolves the properties file (creating the default if absent)
2. Text is validated, warnings logged, hard errors trigger the fallback
3. Parser builds the collection with stable 0-based positions
4. Consumers classify entries by position for rendering

⚡ Key Responsibilities:
- Line parsing (permissive, never errors)
- Duplicate/emptiness detection (strict, line-numbered)
- Tier classification
- Default collection synthesis

📝 Design Philosophy:
The properties file on disk is the single source of truth. Collections are
value snapshots: every load re-reads the file and builds a fresh collection,
and nothing ever mutates a descriptor in place. Absence is a first-class
outcome: lookups return (Environment, bool) and unknown names classify as
the safe tier rather than failing.

🔍 Example:

	loader, err := env.NewLoader(env.LoaderOptions{
		PropertiesPath:  paths.PropertiesFile,
		EnvironmentsDir: paths.EnvironmentsDir,
		Files:           files,
	})
	if err != nil {
		return err
	}
	col := loader.Load(ctx) // never nil, never empty
*/
package env
