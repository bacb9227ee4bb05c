package sidecar

import (
	"encoding/json"
	"fmt"
)

// StartupPayload is the resolved endpoint set handed to the UI shell
// once, before its first paint. Port is null when an external base URL
// override removed the local sidecar from the picture.
type StartupPayload struct {
	UpdaterEnabled bool    `json:"updaterEnabled"`
	Port           *int    `json:"port"`
	SkillsPort     int     `json:"skillsPort"`
	BaseURL        *string `json:"baseUrl"`
	SkillsBaseURL  *string `json:"skillsBase"`
}

// InitScript renders the payload as the JavaScript snippet the webview
// runs before the front end loads.
func (p StartupPayload) InitScript() string {
	return fmt.Sprintf(`window.__OPENCODE__ ??= {};
window.__OPENCODE__.updaterEnabled = %s;
window.__OPENCODE__.port = %s;
window.__OPENCODE__.skillsPort = %s;
window.__OPENCODE__.baseUrl = %s;
window.__OPENCODE__.skillsBase = %s;
`,
		jsValue(p.UpdaterEnabled),
		jsValue(p.Port),
		jsValue(p.SkillsPort),
		jsValue(p.BaseURL),
		jsValue(p.SkillsBaseURL),
	)
}

func jsValue(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(encoded)
}
