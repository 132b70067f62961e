/*
Package config resolves tool paths and loads optional settings.

	            +-------------+
	            |   Config    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Paths   |           | Settings|
	| (layout)  |           | (tuning)|
	+-----------+           +---------+

🎯 Purpose:
- Resolves the per-user config root and every managed location under it
- Loads the optional settings file (YAML, JSON, or HCL)
- Applies defaults so callers never branch on "no settings"

🔄 Flow:
1. Root comes from os.UserConfigDir (or a flag override)
2. Paths derive mechanically from the root
3. The first existing settings candidate is decoded strictly
4. Validate fills defaults and rejects bad durations

📝 Design Philosophy:
Settings tune behavior, they never define environments. The properties file
and the environments directory stay the source of truth; settings only move
or re-time what the tool does with them.
*/
package config
