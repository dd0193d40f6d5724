// Package rod captures group feed pages with a real Chrome browser so that
// lazily loaded posts and collapsed comment threads end up in the HTML.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/marketscan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/time/rate"
)

// Ensure Capturer implements marketscan.Capturer at compile time.
var _ marketscan.Capturer = (*Capturer)(nil)

// DefaultLoginURL is the page holding the login form.
const DefaultLoginURL = "https://www.facebook.com/login"

// DefaultClickInterval is the minimum pause between two expand clicks.
const DefaultClickInterval = 50 * time.Millisecond

// DefaultExpandRounds bounds how often the page is searched again for
// expand links revealed by earlier clicks.
const DefaultExpandRounds = 5

// DefaultExpandPhrases returns the link texts that reveal hidden comments
// and replies.
func DefaultExpandPhrases() []string {
	return []string{" more comment", "1 Reply", " Replies", "View more replies"}
}

// Capturer logs in, scrolls through a group feed and expands its comment
// threads, returning the resulting HTML. Captures run one page at a time;
// Capturer is safe for concurrent use.
type Capturer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	mu       sync.Mutex
	closed   atomic.Bool

	headless      bool
	loginURL      string
	clickInterval time.Duration
	expandRounds  int
	expandPhrases []string
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithHeadless controls whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(c *Capturer) {
		c.headless = headless
	}
}

// WithLoginURL sets the page holding the login form.
func WithLoginURL(u string) Option {
	return func(c *Capturer) {
		c.loginURL = u
	}
}

// WithClickInterval sets the minimum pause between expand clicks.
func WithClickInterval(d time.Duration) Option {
	return func(c *Capturer) {
		c.clickInterval = d
	}
}

// WithExpandRounds sets how many times the page is searched for expand links.
func WithExpandRounds(n int) Option {
	return func(c *Capturer) {
		c.expandRounds = n
	}
}

// WithExpandPhrases replaces the link texts that reveal hidden comments.
func WithExpandPhrases(phrases []string) Option {
	return func(c *Capturer) {
		c.expandPhrases = phrases
	}
}

// NewCapturer launches Chrome and returns a Capturer driving it.
// Close must be called when the Capturer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewCapturer(opts ...Option) (*Capturer, error) {
	c := &Capturer{
		headless:      true,
		loginURL:      DefaultLoginURL,
		clickInterval: DefaultClickInterval,
		expandRounds:  DefaultExpandRounds,
		expandPhrases: DefaultExpandPhrases(),
	}
	for _, opt := range opts {
		opt(c)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-notifications").
		Leakless(true).
		Headless(c.headless)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	c.browser = browser
	c.launcher = l
	return c, nil
}

// Capture opens the group in a fresh tab and returns its HTML after
// scrolling and expanding comments. Login is skipped when no username is
// given.
func (c *Capturer) Capture(ctx context.Context, req marketscan.CaptureRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if c.closed.Load() {
		return "", marketscan.Errorf(marketscan.EINVALID, "capturer is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	page, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if req.Username != "" {
		if err := c.login(page, req.Username, req.Password); err != nil {
			return "", fmt.Errorf("logging in: %w", err)
		}
	}

	if err := page.Navigate(req.GroupURL); err != nil {
		return "", fmt.Errorf("opening group: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("opening group: %w", err)
	}
	sortByNewest(page)

	if _, err := Scroll(ctx, pageScroller{page: page}, req.Pages, req.Delay); err != nil {
		return "", fmt.Errorf("scrolling: %w", err)
	}
	if _, err := c.expand(ctx, page); err != nil {
		return "", fmt.Errorf("expanding comments: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (c *Capturer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		c.launcher.Kill()
		c.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (c *Capturer) LauncherPID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.launcher == nil {
		return 0
	}
	return c.launcher.PID()
}

func (c *Capturer) login(page *rod.Page, username, password string) error {
	if err := page.Navigate(c.loginURL); err != nil {
		return err
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}

	email, err := page.Element("#email")
	if err != nil {
		return err
	}
	if err := email.Input(username); err != nil {
		return err
	}
	pass, err := page.Element("#pass")
	if err != nil {
		return err
	}
	if err := pass.Input(password); err != nil {
		return err
	}
	button, err := page.Element("#loginbutton")
	if err != nil {
		return err
	}

	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := button.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	wait()
	return nil
}

// sortByNewest switches the feed to newest posts first when the group
// offers it. Groups without the menu are left as they are.
func sortByNewest(page *rod.Page) {
	for _, text := range []string{"RECENT ACTIVITY", "New Posts"} {
		has, el, err := page.HasR("a", text)
		if err != nil || !has {
			return
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return
		}
	}
}

// expand clicks every link revealing hidden comments, searching again after
// each round since replies can bring up new links. It returns the number of
// successful clicks.
func (c *Capturer) expand(ctx context.Context, page *rod.Page) (int, error) {
	limiter := rate.NewLimiter(rate.Every(c.clickInterval), 1)
	query := ExpandQuery(c.expandPhrases)

	clicked := 0
	for round := 0; round < c.expandRounds; round++ {
		links, err := page.ElementsX(query)
		if err != nil {
			return clicked, err
		}
		if len(links) == 0 {
			break
		}
		for _, link := range links {
			if err := limiter.Wait(ctx); err != nil {
				return clicked, err
			}
			// Links detach when a sibling click rerenders the thread.
			if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
				continue
			}
			clicked++
		}
	}
	return clicked, nil
}

type pageScroller struct {
	page *rod.Page
}

func (p pageScroller) ScrollHeight() (int, error) {
	res, err := p.page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (p pageScroller) ScrollTo(y int) error {
	_, err := p.page.Eval(`(y) => window.scrollTo(0, y)`, y)
	return err
}
