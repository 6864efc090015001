package build

import "os"

// platformEnv overrides the platform version fed to the
// toolchain-floor table.
const platformEnv = "DAFFODIL_PLATFORM_VERSION"

// defaultPlatformVersion is assumed when nothing declares one.
const defaultPlatformVersion = "17"

// platformVersion returns the platform version used for
// toolchain-floor resolution.
func platformVersion() string {
	if v := os.Getenv(platformEnv); v != "" {
		return v
	}
	return defaultPlatformVersion
}
