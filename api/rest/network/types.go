package network

const (
	ModeTroubleshoot = "troubleshoot"
	ModeExtractCode  = "extract-code"
)

// request payload for network troubleshooting; the required field depends on Mode
type TroubleshootRequest struct {
	Description          string `json:"description,omitempty" example:"Pods cannot resolve external DNS names"`
	Provider             string `json:"provider" example:"openai"`
	Mode                 string `json:"mode,omitempty" enums:"troubleshoot,extract-code" default:"troubleshoot"`
	TroubleshootingGuide string `json:"troubleshootingGuide,omitempty"`
}
