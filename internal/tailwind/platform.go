package tailwind

import "runtime"

func binaryName() string {
	return binaryNameFor(runtime.GOOS, runtime.GOARCH)
}

// binaryNameFor returns the release asset name for a platform.
func binaryNameFor(goos, goarch string) string {
	arch := "x64"
	if goarch == "arm64" {
		arch = "arm64"
	}
	switch goos {
	case "darwin":
		return "tailwindcss-macos-" + arch
	case "windows":
		return "tailwindcss-windows-x64.exe"
	default:
		return "tailwindcss-" + goos + "-" + arch
	}
}

// PlatformName returns a human-readable name for the current platform.
func PlatformName() string {
	return platformName(runtime.GOOS, runtime.GOARCH)
}

func platformName(goos, goarch string) string {
	var name string
	switch goos {
	case "darwin":
		name = "macOS"
	case "linux":
		name = "Linux"
	case "windows":
		name = "Windows"
	default:
		name = goos
	}
	return name + " " + archName(goarch)
}

func archName(goarch string) string {
	switch goarch {
	case "arm64":
		return "ARM64"
	case "amd64":
		return "x64"
	default:
		return goarch
	}
}
