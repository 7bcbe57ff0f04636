// Package buildinfo carries the version stamped in by the linker:
//
//	go build -ldflags "-X objects3d/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
)

// Short returns the version, the commit when no version was stamped, or "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}

// Title returns the window title for name.
func Title(name string) string {
	return name + " (" + Short() + ")"
}
