package buildinfo

// Overridden at link time: -ldflags "-X doordash-adapter/internal/buildinfo.Version=1.2.0"
var (
	Version = "1.0.0"
	Commit  = ""
	BuiltAt = ""
)

func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"builtAt": BuiltAt,
	}
}
