package version

// Set at build time with -ldflags "-X github.com/app-sre/dbconsole/pkg/version.version=...".
var version = "devel"

func Version() string {
	return version
}
