package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/k6ext"
)

// ReducedMotion represents a browser reduce-motion setting.
type ReducedMotion string

// Valid reduce-motion options.
const (
	ReducedMotionReduce       ReducedMotion = "reduce"
	ReducedMotionNoPreference ReducedMotion = "no-preference"
)

func (r ReducedMotion) String() string {
	return reducedMotionToString[r]
}

var reducedMotionToString = map[ReducedMotion]string{ //nolint:gochecknoglobals
	ReducedMotionReduce:       "reduce",
	ReducedMotionNoPreference: "no-preference",
}

var reducedMotionToID = map[string]ReducedMotion{ //nolint:gochecknoglobals
	"reduce":        ReducedMotionReduce,
	"no-preference": ReducedMotionNoPreference,
}

// MarshalJSON marshals the enum as a quoted JSON string.
func (r ReducedMotion) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(reducedMotionToString[r])
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// UnmarshalJSON unmarshals a quoted JSON string to the enum value.
func (r *ReducedMotion) UnmarshalJSON(b []byte) error {
	var j string
	if err := json.Unmarshal(b, &j); err != nil {
		return fmt.Errorf("unmarshaling %q to ReducedMotion: %w", b, err)
	}
	*r = reducedMotionToID[j]
	return nil
}

// Screen represents a device screen.
type Screen struct {
	Width  int64 `js:"width"`
	Height int64 `js:"height"`
}

// Parse reads width/height from screen if it exists.
func (s *Screen) Parse(ctx context.Context, screen goja.Value) error {
	if !k6ext.ValueExists(screen) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := screen.ToObject(rt)
	for _, k := range obj.Keys() {
		switch k {
		case "width":
			s.Width = obj.Get(k).ToInteger()
		case "height":
			s.Height = obj.Get(k).ToInteger()
		}
	}
	return nil
}

// ColorScheme represents a browser color scheme.
type ColorScheme string

// Valid color schemes.
const (
	ColorSchemeLight        ColorScheme = "light"
	ColorSchemeDark         ColorScheme = "dark"
	ColorSchemeNoPreference ColorScheme = "no-preference"
)

func (c ColorScheme) String() string {
	return colorSchemeToString[c]
}

var colorSchemeToString = map[ColorScheme]string{ //nolint:gochecknoglobals
	ColorSchemeLight:        "light",
	ColorSchemeDark:         "dark",
	ColorSchemeNoPreference: "no-preference",
}

var colorSchemeToID = map[string]ColorScheme{ //nolint:gochecknoglobals
	"light":         ColorSchemeLight,
	"dark":          ColorSchemeDark,
	"no-preference": ColorSchemeNoPreference,
}

// MarshalJSON marshals the enum as a quoted JSON string.
func (c ColorScheme) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(colorSchemeToString[c])
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// UnmarshalJSON unmarshals a quoted JSON string to the enum value.
func (c *ColorScheme) UnmarshalJSON(b []byte) error {
	var j string
	if err := json.Unmarshal(b, &j); err != nil {
		return fmt.Errorf("unmarshaling %q to ColorScheme: %w", b, err)
	}
	*c = colorSchemeToID[j]
	return nil
}

// BrowserContextOptions stores browser context options.
type BrowserContextOptions struct {
	AcceptDownloads   bool              `js:"acceptDownloads"`
	BypassCSP         bool              `js:"bypassCSP"`
	ColorScheme       ColorScheme       `js:"colorScheme"`
	DeviceScaleFactor float64           `js:"deviceScaleFactor"`
	ExtraHTTPHeaders  map[string]string `js:"extraHTTPHeaders"`
	Geolocation       *Geolocation      `js:"geolocation"`
	HasTouch          bool              `js:"hasTouch"`
	HttpCredentials   *Credentials      `js:"httpCredentials"`
	IgnoreHTTPSErrors bool              `js:"ignoreHTTPSErrors"`
	IsMobile          bool              `js:"isMobile"`
	JavaScriptEnabled bool              `js:"javaScriptEnabled"`
	Locale            string            `js:"locale"`
	Offline           bool              `js:"offline"`
	Permissions       []string          `js:"permissions"`
	ReducedMotion     ReducedMotion     `js:"reducedMotion"`
	Screen            *Screen           `js:"screen"`
	TimezoneID        string            `js:"timezoneID"`
	UserAgent         string            `js:"userAgent"`
	VideosPath        string            `js:"videosPath"`
	Viewport          *Viewport         `js:"viewport"`
}

// NewBrowserContextOptions creates a default set of browser context options.
func NewBrowserContextOptions() *BrowserContextOptions {
	return &BrowserContextOptions{
		ColorScheme:       ColorSchemeLight,
		DeviceScaleFactor: 1.0,
		ExtraHTTPHeaders:  make(map[string]string),
		JavaScriptEnabled: true,
		Locale:            DefaultLocale,
		Permissions:       []string{},
		ReducedMotion:     ReducedMotionNoPreference,
		Screen:            &Screen{Width: DefaultScreenWidth, Height: DefaultScreenHeight},
		Viewport:          &Viewport{Width: DefaultScreenWidth, Height: DefaultScreenHeight},
	}
}

// Parse reads opts's js-tagged fields into b, leaving defaults in place
// for anything opts doesn't set.
func (b *BrowserContextOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "acceptDownloads":
			b.AcceptDownloads = v.ToBoolean()
		case "bypassCSP":
			b.BypassCSP = v.ToBoolean()
		case "colorScheme":
			b.ColorScheme = ColorScheme(v.String())
		case "deviceScaleFactor":
			b.DeviceScaleFactor = v.ToFloat()
		case "extraHTTPHeaders":
			headers := v.ToObject(rt)
			for _, hk := range headers.Keys() {
				b.ExtraHTTPHeaders[hk] = headers.Get(hk).String()
			}
		case "geolocation":
			g := &Geolocation{}
			geo := v.ToObject(rt)
			for _, gk := range geo.Keys() {
				switch gk {
				case "latitude":
					g.Latitude = geo.Get(gk).ToFloat()
				case "longitude":
					g.Longitude = geo.Get(gk).ToFloat()
				case "accurracy":
					g.Accurracy = geo.Get(gk).ToFloat()
				}
			}
			b.Geolocation = g
		case "hasTouch":
			b.HasTouch = v.ToBoolean()
		case "httpCredentials":
			c := NewCredentials()
			if err := c.Parse(ctx, v); err != nil {
				return fmt.Errorf("parsing httpCredentials: %w", err)
			}
			b.HttpCredentials = c
		case "ignoreHTTPSErrors":
			b.IgnoreHTTPSErrors = v.ToBoolean()
		case "isMobile":
			b.IsMobile = v.ToBoolean()
		case "javaScriptEnabled":
			b.JavaScriptEnabled = v.ToBoolean()
		case "locale":
			b.Locale = v.String()
		case "offline":
			b.Offline = v.ToBoolean()
		case "permissions":
			b.Permissions = toStringSlice(rt, v)
		case "reducedMotion":
			b.ReducedMotion = ReducedMotion(v.String())
		case "screen":
			s := &Screen{}
			if err := s.Parse(ctx, v); err != nil {
				return fmt.Errorf("parsing screen: %w", err)
			}
			b.Screen = s
		case "timezoneID":
			b.TimezoneID = v.String()
		case "userAgent":
			b.UserAgent = v.String()
		case "videosPath":
			b.VideosPath = v.String()
		case "viewport":
			vp := &Viewport{}
			if err := vp.Parse(ctx, v); err != nil {
				return fmt.Errorf("parsing viewport: %w", err)
			}
			b.Viewport = vp
		}
	}
	return b.Validate()
}

// Validate validates the browser context options.
func (b *BrowserContextOptions) Validate() error {
	if err := b.Geolocation.Validate(); err != nil {
		return fmt.Errorf("validating geolocation option: %w", err)
	}

	return nil
}

// Geolocation represents a geolocation.
type Geolocation struct {
	Latitude  float64 `js:"latitude"`
	Longitude float64 `js:"longitude"`
	Accurracy float64 `js:"accurracy"`
}

// Validate validates the geolocation.
func (g *Geolocation) Validate() error {
	if g == nil {
		return nil // nothing to validate
	}

	if g.Accurracy < 0 {
		return fmt.Errorf(`invalid accuracy "%.2f": precondition 0 <= ACCURACY failed`, g.Accurracy)
	}
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf(`invalid latitude "%.2f": precondition -90 <= LATITUDE <= 90 failed`, g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf(`invalid longitude "%.2f": precondition -180 <= LONGITUDE <= 180 failed`, g.Longitude)
	}

	return nil
}

// WaitForEventOptions are the options used by the browserContext.waitForEvent API.
type WaitForEventOptions struct {
	Timeout     time.Duration
	PredicateFn goja.Callable
}

// NewWaitForEventOptions created a new instance of WaitForEventOptions with a
// default timeout.
func NewWaitForEventOptions(defaultTimeout time.Duration) *WaitForEventOptions {
	return &WaitForEventOptions{
		Timeout: defaultTimeout,
	}
}

// Parse will parse the options or a callable predicate function. It can parse
// only a callable predicate function or an object which contains a callable
// predicate function and a timeout.
func (w *WaitForEventOptions) Parse(ctx context.Context, optsOrPredicate goja.Value) error {
	if !k6ext.ValueExists(optsOrPredicate) {
		return nil
	}

	var (
		isCallable bool
		rt         = k6ext.Runtime(ctx)
	)

	w.PredicateFn, isCallable = goja.AssertFunction(optsOrPredicate)
	if isCallable {
		return nil
	}

	opts := optsOrPredicate.ToObject(rt)
	for _, k := range opts.Keys() {
		switch k {
		case "predicate":
			w.PredicateFn, isCallable = goja.AssertFunction(opts.Get(k))
			if !isCallable {
				return errors.New("predicate function is not callable")
			}
		case "timeout": //nolint:goconst
			w.Timeout = time.Duration(opts.Get(k).ToInteger()) * time.Millisecond
		}
	}

	return nil
}

// GrantPermissionsOptions is used by BrowserContext.GrantPermissions.
type GrantPermissionsOptions struct {
	Origin string
}

// NewGrantPermissionsOptions returns a new GrantPermissionsOptions.
func NewGrantPermissionsOptions() *GrantPermissionsOptions {
	return &GrantPermissionsOptions{}
}

// Parse parses the options from opts if opts exists in the goja runtime.
func (g *GrantPermissionsOptions) Parse(ctx context.Context, opts goja.Value) {
	rt := k6ext.Runtime(ctx)

	if k6ext.ValueExists(opts) {
		opts := opts.ToObject(rt)
		for _, k := range opts.Keys() {
			if k == "origin" {
				g.Origin = opts.Get(k).String()
				break
			}
		}
	}
}
