// Package chromium is responsible for launching a Chrome browser process and managing its lifetime.
package chromium

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/browsercore/xk6-frame/api"
	"github.com/browsercore/xk6-frame/common"
	"github.com/browsercore/xk6-frame/k6ext"
	"github.com/browsercore/xk6-frame/log"
	"github.com/browsercore/xk6-frame/storage"

	k6modules "go.k6.io/k6/js/modules"

	"github.com/dop251/goja"
)

var _ api.BrowserType = &BrowserType{}

// BrowserType provides methods to launch a Chrome browser instance or
// connect to an existing one.
type BrowserType struct {
	execPath string
}

// NewBrowserType returns a new Chrome browser type.
func NewBrowserType() *BrowserType {
	return &BrowserType{}
}

// Name returns the name of this browser type.
func (b *BrowserType) Name() string { return "chromium" }

func (b *BrowserType) makeLogger(ctx context.Context) *log.Logger {
	k6Logger := k6ext.GetVU(ctx).State().Logger
	return log.NewLogger(ctx, k6Logger, false, nil)
}

// Launch allocates a new Chrome browser process and returns the Browser
// controlling it, along with the process's pid.
func (b *BrowserType) Launch(vu k6modules.VU, opts goja.Value) (_ api.Browser, browserProcessID int) {
	ctx := vu.Context()
	logger := b.makeLogger(ctx)

	launchOpts := common.NewLaunchOptions()
	if err := launchOpts.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing launch options: %w", err)
	}

	dataDir := &storage.Dir{}
	if err := dataDir.Make("", "xk6-frame-"); err != nil {
		k6ext.Panic(ctx, "creating a user data directory: %w", err)
	}
	args := prepareArgs(launchOpts, dataDir.Dir)

	path := launchOpts.ExecutablePath
	if path == "" {
		path = b.ExecutablePath()
	}
	if path == "" {
		k6ext.Panic(ctx, "no Chrome/Chromium executable found; set launch option executablePath")
	}

	bProcCtx, bProcCtxCancel := context.WithTimeout(ctx, launchOpts.Timeout)
	browserProc, err := common.NewBrowserProcess(bProcCtx, path, args, launchOpts.Env, dataDir, bProcCtxCancel, logger)
	if err != nil {
		bProcCtxCancel()
		k6ext.Panic(ctx, "launching browser: %w", err)
	}

	browserCtx, browserCtxCancel := context.WithCancel(ctx)
	browser, err := common.NewBrowser(browserCtx, browserCtxCancel, browserProc, launchOpts, logger)
	if err != nil {
		k6ext.Panic(ctx, "launching browser: %w", err)
	}

	return browser, browserProc.Pid()
}

// Connect attaches to an existing browser instance reachable at
// wsEndpoint, and returns the Browser controlling it.
func (b *BrowserType) Connect(vu k6modules.VU, wsEndpoint string, opts goja.Value) api.Browser {
	ctx := vu.Context()
	logger := b.makeLogger(ctx)

	launchOpts := common.NewLaunchOptions()
	if err := launchOpts.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing connect options: %w", err)
	}

	bProcCtx, bProcCtxCancel := context.WithTimeout(ctx, launchOpts.Timeout)
	browserProc, err := common.NewRemoteBrowserProcess(bProcCtx, wsEndpoint, bProcCtxCancel, logger)
	if err != nil {
		bProcCtxCancel()
		k6ext.Panic(ctx, "connecting to browser: %w", err)
	}

	browserCtx, browserCtxCancel := context.WithCancel(ctx)
	browser, err := common.NewBrowser(browserCtx, browserCtxCancel, browserProc, launchOpts, logger)
	if err != nil {
		k6ext.Panic(ctx, "connecting to browser: %w", err)
	}

	return browser
}

// LaunchPersistentContext is not yet implemented: xk6-frame always opens
// a fresh default context on launch.
func (b *BrowserType) LaunchPersistentContext(vu k6modules.VU, userDataDir string, opts goja.Value) api.Browser {
	k6ext.Panic(vu.Context(), "BrowserType.LaunchPersistentContext is not implemented")
	return nil
}

// ExecutablePath returns the path where the extension expects to find a
// Chrome/Chromium executable, searching common binary names and install
// locations across platforms.
func (b *BrowserType) ExecutablePath() (execPath string) {
	if b.execPath != "" {
		return b.execPath
	}
	defer func() { b.execPath = execPath }()

	for _, path := range [...]string{
		"headless_shell",
		"headless-shell",
		"chromium",
		"chromium-browser",
		"google-chrome",
		"google-chrome-stable",
		"google-chrome-beta",
		"google-chrome-unstable",
		"/usr/bin/google-chrome",

		"chrome",
		"chrome.exe",
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		filepath.Join(os.Getenv("USERPROFILE"), `AppData\Local\Google\Chrome\Application\chrome.exe`),

		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
	} {
		if _, err := exec.LookPath(path); err == nil {
			return path
		}
	}

	return ""
}

// prepareArgs builds the Chrome command-line flags, after Puppeteer's and
// Playwright's default behavior, merged with the caller's launch options.
func prepareArgs(opts *common.LaunchOptions, userDataDir string) []string {
	flags := map[string]string{
		"disable-background-networking":                      "",
		"disable-background-timer-throttling":                "",
		"disable-backgrounding-occluded-windows":             "",
		"disable-breakpad":                                   "",
		"disable-component-extensions-with-background-pages": "",
		"disable-default-apps":                                "",
		"disable-dev-shm-usage":                               "",
		"disable-extensions":                                  "",
		"disable-hang-monitor":                                "",
		"disable-ipc-flooding-protection":                     "",
		"disable-popup-blocking":                              "",
		"disable-prompt-on-repost":                            "",
		"disable-renderer-backgrounding":                      "",
		"force-color-profile":                                 "srgb",
		"metrics-recording-only":                              "",
		"no-first-run":                                        "",
		"enable-automation":                                   "",
		"password-store":                                      "basic",
		"use-mock-keychain":                                   "",
		"no-default-browser-check":                            "",
		"remote-debugging-port":                                "0",
		"user-data-dir":                                        userDataDir,
	}
	if opts.Headless {
		flags["headless"] = ""
		flags["hide-scrollbars"] = ""
		flags["mute-audio"] = ""
	}
	if opts.Devtools {
		flags["auto-open-devtools-for-tabs"] = ""
	}
	if opts.IgnoreHTTPSErrs {
		flags["ignore-certificate-errors"] = ""
	}

	for _, a := range opts.Args {
		name, val := a, ""
		if i := strings.IndexByte(a, '='); i >= 0 {
			name, val = a[:i], a[i+1:]
		}
		flags[strings.TrimPrefix(name, "--")] = val
	}

	args := make([]string, 0, len(flags))
	for name, val := range flags {
		if val == "" {
			args = append(args, fmt.Sprintf("--%s", name))
			continue
		}
		args = append(args, fmt.Sprintf("--%s=%s", name, val))
	}
	return args
}
