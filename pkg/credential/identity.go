package credential

import (
	"os"
	"os/user"
	"runtime"
)

// 👤 UserInfo carries the local identity facts sent with each credential
// record.
type UserInfo struct {
	Username string `json:"username"`
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`
	Arch     string `json:"arch"`
	HomeDir  string `json:"homeDir"`
}

// CollectUserInfo gathers identity facts from the local machine. Fields
// that cannot be determined are left empty rather than failing the caller.
func CollectUserInfo() UserInfo {
	info := UserInfo{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
	}

	if u, err := user.Current(); err == nil {
		info.Username = u.Username
		info.HomeDir = u.HomeDir
	} else if name := os.Getenv("USER"); name != "" {
		info.Username = name
	} else if name := os.Getenv("USERNAME"); name != "" {
		info.Username = name
	}

	if info.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			info.HomeDir = home
		}
	}

	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}

	return info
}
