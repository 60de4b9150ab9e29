package version

// Set at build time with:
//
//	-ldflags "-X github.com/aum-search/aum-web/pkg/version.version=..."
var version = "dev"

func Version() string {
	return version
}
