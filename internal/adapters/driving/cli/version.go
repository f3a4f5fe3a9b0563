package cli

// version is set at build time through SetVersion.
var version = "dev"

func init() {
	rootCmd.SetVersionTemplate("chatvault version {{.Version}}\n")
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
