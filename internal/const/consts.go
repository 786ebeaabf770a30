package consts

const (
	Version           = "1.0.0"
	AppName           = "GestureDrop"
	BinaryName        = "gesturedrop-firewall"
	EnvFileName       = ".env"
	PolicyRegistryKey = `SOFTWARE\GestureDrop\Firewall`
	FirewallService   = "MpsSvc"
	DefaultTimeout    = 60 // seconds
	MaxLogSize        = 20 // MB
	MaxLogBackups     = 5
	MaxLogAge         = 30 // days
)
