package cli

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"chatsource/pkg/config"
	"chatsource/pkg/logger"
	"chatsource/pkg/models"
	"chatsource/pkg/reader"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Fetch canonical messages from the selected platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		since := time.Now().Add(-sinceDur)
		var (
			mu  sync.Mutex
			out []models.Message
		)
		eachPlatform(cmd.Context(), cfg, func(ctx context.Context, src reader.Source) error {
			msgs, err := src.FetchMessages(ctx, since)
			if err != nil {
				return err
			}
			mu.Lock()
			out = append(out, msgs...)
			mu.Unlock()
			return nil
		})
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.After(out[j].Timestamp)
		})
		return printJSON(out)
	},
}

var threadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "Fetch grouped conversation threads from the selected platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		since := time.Now().Add(-sinceDur)
		var (
			mu  sync.Mutex
			out []models.MessageThread
		)
		eachPlatform(cmd.Context(), cfg, func(ctx context.Context, src reader.Source) error {
			ths, err := src.FetchThreads(ctx, since)
			if err != nil {
				return err
			}
			mu.Lock()
			out = append(out, ths...)
			mu.Unlock()
			return nil
		})
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LastMessageDate.After(out[j].LastMessageDate)
		})
		return printJSON(out)
	},
}

// eachPlatform runs fn against every selected platform concurrently, one
// reader instance per platform. Connect/fetch failures are logged and do
// not abort the other platforms; disconnect is guaranteed on every path.
func eachPlatform(ctx context.Context, cfg *config.Config, fn func(ctx context.Context, src reader.Source) error) {
	var wg sync.WaitGroup
	for _, name := range platformsFlag {
		p := models.Platform(strings.ToLower(strings.TrimSpace(name)))
		src, err := newReader(cfg, p)
		if err != nil {
			logger.Warn("platform_skipped", "platform", name, "error", err.Error())
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := src.Connect(); err != nil {
				logger.Error("connect_failed", "platform", string(p), "error", err.Error())
				return
			}
			defer src.Disconnect()
			if err := fn(ctx, src); err != nil {
				logger.Error("fetch_failed", "platform", string(p), "error", err.Error())
			}
		}()
	}
	wg.Wait()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
