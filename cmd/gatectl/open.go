package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/publicsuffix"

	"gpark.dev/acs-admin/internal/admin/gate"
	"gpark.dev/acs-admin/internal/admin/observability"
)

var openCmd = &cobra.Command{
	Use:   "open <gate-id>...",
	Short: "Request a manual opening for one or more gates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		csrfToken, _ := cmd.Flags().GetString("csrf-token")
		cookies, _ := cmd.Flags().GetString("cookie")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		logger, err := observability.NewLogger(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		client := &http.Client{Timeout: timeout}
		tokens, err := resolveTokenProvider(ctx, client, csrfToken, cookies)
		if err != nil {
			return err
		}

		d, err := gate.NewDispatcher(gate.Config{
			BaseURL:     cfg.Gate.BaseURL,
			AdminPrefix: cfg.Gate.AdminPrefix,
			HeaderName:  cfg.CSRF.HeaderName,
		},
			gate.WithHTTPClient(client),
			gate.WithTokenProvider(tokens),
			gate.WithNotifier(gate.NewTerminalNotifier()),
			gate.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		results := make([]gate.Result, 0, len(args))
		for _, id := range args {
			results = append(results, <-d.Dispatch(ctx, nil, id))
		}

		if jsonOutput {
			printResultsJSON(cmd.OutOrStdout(), results)
		} else {
			printResultsTable(cmd.OutOrStdout(), results)
		}

		failed := 0
		for _, res := range results {
			if !res.OK() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d gate request(s) failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	openCmd.Flags().String("csrf-token", "", "anti-forgery token to send")
	openCmd.Flags().String("cookie", "", "cookie header to read the token from")
	openCmd.Flags().Duration("timeout", 10*time.Second, "HTTP timeout")
}

// resolveTokenProvider prefers an explicit token, then a cookie string, then a
// token issued by the admin site itself.
func resolveTokenProvider(ctx context.Context, client *http.Client, token, cookies string) (gate.TokenProvider, error) {
	if token != "" {
		return gate.StaticToken(token), nil
	}
	name := cfg.CSRF.CookieName
	if cookies != "" {
		return gate.TokenFunc(func(context.Context) (string, bool) {
			return gate.ParseCookieValue(cookies, name)
		}), nil
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	client.Jar = jar

	adminURL, err := adminRoot(cfg.Gate.BaseURL, cfg.Gate.AdminPrefix)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, adminURL.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch anti-forgery cookie: %w", err)
	}
	resp.Body.Close()

	return gate.JarTokenProvider{Jar: jar, URL: req.URL, Name: name}, nil
}

// adminRoot returns the rooted admin URL, e.g. http://host/admin/, resolved
// the same way the dispatcher resolves gate endpoints.
func adminRoot(baseURL, prefix string) (*url.URL, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	path := "/"
	if p := strings.Trim(strings.TrimSpace(prefix), "/"); p != "" {
		path = "/" + p + "/"
	}
	return base.ResolveReference(&url.URL{Path: path}), nil
}
