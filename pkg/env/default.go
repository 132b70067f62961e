package env

import "context"

// 🧱 DefaultPropertiesText is the template written when no properties file
// exists yet. Parsing it yields the universal three-entry fallback.
const DefaultPropertiesText = `# MCP environment definitions
# Format: DisplayName:config-file-base-name (".json" is appended when missing)
# Lines starting with '#' and blank lines are ignored.
Local:mcp-local
Dev:mcp-dev
Prod:mcp-prod
`

// 📄 DefaultEnvironmentFileContent is the template for a freshly created
// per-environment config file.
const DefaultEnvironmentFileContent = `{"mcpServers": {}}
`

// 🧯 DefaultCollection builds the fallback collection by parsing the default
// template, so it is indistinguishable in shape from a loaded one.
func DefaultCollection(ctx context.Context) *Collection {
	return Parse(ctx, DefaultPropertiesText)
}
