package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// HomeEnv names the environment variable that relocates the jolt home directory.
const HomeEnv = "JOLT_HOME"

// Layout captures canonical locations inside a jolt home directory.
type Layout struct {
	Home string
}

// Resolve determines the home directory using the optional --home flag, then
// JOLT_HOME, then ~/.jolt.
func Resolve(homeFlag string) (Layout, error) {
	if homeFlag != "" {
		abs, err := filepath.Abs(homeFlag)
		if err != nil {
			return Layout{}, fmt.Errorf("resolve home flag: %w", err)
		}
		return New(abs), nil
	}

	if override, ok := os.LookupEnv(HomeEnv); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return Layout{}, fmt.Errorf("resolve %s: %w", HomeEnv, err)
		}
		return New(abs), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Layout{}, fmt.Errorf("detect user home: %w", err)
	}
	return New(filepath.Join(home, ".jolt")), nil
}

// New returns a layout rooted at home.
func New(home string) Layout {
	return Layout{Home: filepath.Clean(home)}
}

func (l Layout) ShimDir() string { return filepath.Join(l.Home, "bin") }
func (l Layout) ConfigFile() string { return filepath.Join(l.Home, "config.yaml") }
func (l Layout) LogDir() string { return filepath.Join(l.Home, "log") }
func (l Layout) toolsDir() string { return filepath.Join(l.Home, "tools") }
func (l Layout) imageDir() string { return filepath.Join(l.toolsDir(), "image") }
func (l Layout) inventoryDir() string { return filepath.Join(l.toolsDir(), "inventory") }
func (l Layout) userToolchainDir() string { return filepath.Join(l.toolsDir(), "user") }

// NodeImageRootDir holds one directory per installed node version.
func (l Layout) NodeImageRootDir() string { return filepath.Join(l.imageDir(), "node") }

// YarnImageRootDir holds one directory per installed yarn version.
func (l Layout) YarnImageRootDir() string { return filepath.Join(l.imageDir(), "yarn") }

// PackageImageRootDir holds <name>/<version> directories for installed packages.
func (l Layout) PackageImageRootDir() string { return filepath.Join(l.imageDir(), "packages") }

func (l Layout) NodeImageDir(version string) string {
	return filepath.Join(l.NodeImageRootDir(), version)
}

// NodeBinDir is where node, npm and npx live for a node version.
func (l Layout) NodeBinDir(version string) string {
	return filepath.Join(l.NodeImageDir(version), "bin")
}

// ThirdPartyBinDir is where executables of packages installed against a node
// version live.
func (l Layout) ThirdPartyBinDir(nodeVersion string) string {
	return filepath.Join(l.NodeImageDir(nodeVersion), "3p", "bin")
}

func (l Layout) YarnBinDir(version string) string {
	return filepath.Join(l.YarnImageRootDir(), version, "bin")
}

func (l Layout) NodeInventoryDir() string { return filepath.Join(l.inventoryDir(), "node") }

// PackageInventoryDir holds fetched package archives.
func (l Layout) PackageInventoryDir() string { return filepath.Join(l.inventoryDir(), "packages") }

// NodeNpmVersionFile records the npm version bundled with a node version.
func (l Layout) NodeNpmVersionFile(version string) string {
	return filepath.Join(l.NodeInventoryDir(), fmt.Sprintf("node-v%s-npm", version))
}

// PackageDistroFile is the fetched archive for a package version.
func (l Layout) PackageDistroFile(name, version string) string {
	return filepath.Join(l.PackageInventoryDir(), fmt.Sprintf("%s-%s.tgz", name, version))
}

// UserPlatformFile stores the user's default toolchain.
func (l Layout) UserPlatformFile() string {
	return filepath.Join(l.userToolchainDir(), "platform.json")
}

func (l Layout) UserPackageDir() string { return filepath.Join(l.userToolchainDir(), "packages") }

func (l Layout) UserPackageConfigFile(name string) string {
	return filepath.Join(l.UserPackageDir(), name+".json")
}

func (l Layout) UserBinDir() string { return filepath.Join(l.userToolchainDir(), "bins") }

// EnsureDirs creates the directory hierarchy the rest of jolt expects.
func (l Layout) EnsureDirs() error {
	dirs := []string{
		l.ShimDir(),
		l.LogDir(),
		l.NodeImageRootDir(),
		l.YarnImageRootDir(),
		l.PackageImageRootDir(),
		l.NodeInventoryDir(),
		l.PackageInventoryDir(),
		l.UserPackageDir(),
		l.UserBinDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Executable appends the platform executable suffix.
func Executable(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// FileExists reports whether a path exists and is not a directory.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
