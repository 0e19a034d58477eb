// joshemctl is the admin terminal for the JoShem Foods site. Every command
// goes through the client store, so the tool keeps working against the local
// cache when the server is down.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"joshemfoods/config"
	"joshemfoods/internal/cache"
	"joshemfoods/internal/domain"
	"joshemfoods/internal/ordering"
	"joshemfoods/internal/schedule"
	"joshemfoods/internal/sitestore"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "joshemctl",
		Usage: "admin console for the JoShem Foods ordering site",
		Commands: []*cli.Command{
			{
				Name:   "ping",
				Usage:  "check whether the store server is reachable",
				Action: runPing,
			},
			{
				Name:   "menu",
				Usage:  "list menu items",
				Action: runMenu,
			},
			{
				Name:  "orders",
				Usage: "list orders (active by default)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "include completed and cancelled orders"},
				},
				Action: runOrders,
			},
			{
				Name:      "conflicts",
				Usage:     "list orders picked up within 30 minutes of the given order",
				ArgsUsage: "<order-id>",
				Action:    runConflicts,
			},
			{
				Name:   "calendar",
				Usage:  "show per-day pickup counts for the next weeks",
				Action: runCalendar,
			},
			{
				Name:  "place",
				Usage: "place a new order",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "pickup", Required: true, Usage: "pickup time, e.g. 2026-09-01T18:30"},
					&cli.StringFlag{Name: "allergens"},
					&cli.StringFlag{Name: "comments"},
					&cli.StringSliceFlag{Name: "item", Required: true, Usage: "cart line as id:size[:quantity], repeatable"},
				},
				Action: runPlace,
			},
			{
				Name:      "status",
				Usage:     "set an order's status",
				ArgsUsage: "<order-id> <pending|confirmed|ready|completed|cancelled>",
				Action:    runStatus,
			},
			{
				Name:  "passwd",
				Usage: "change the admin password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "current", Required: true},
					&cli.StringFlag{Name: "new", Required: true},
				},
				Action: runPasswd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Command failed")
	}
}

func newStore(cfg config.Config) (*sitestore.Store, error) {
	localCache, err := newCache(cfg)
	if err != nil {
		return nil, err
	}
	return sitestore.New(sitestore.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	}, localCache), nil
}

func newCache(cfg config.Config) (cache.Cache, error) {
	switch cfg.CacheDriver {
	case "sqlite":
		return cache.OpenSQLite(cfg.CachePath)
	case "redis":
		return cache.NewRedis(config.MustInitRedis(cfg)), nil
	case "memory":
		return cache.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.CacheDriver)
	}
}

func runPing(c *cli.Context) error {
	cfg := config.MustLoad()
	probe := sitestore.NewHealthProbe(cfg.APIBaseURL, cfg.RequestTimeout, cfg.HealthInterval)
	probe.Check(c.Context)
	if probe.Online() {
		fmt.Println("online")
	} else {
		fmt.Println("offline")
	}
	return nil
}

func runMenu(c *cli.Context) error {
	cfg := config.MustLoad()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	for _, item := range store.Menu(c.Context) {
		flags := ""
		if !item.Visible {
			flags += " [hidden]"
		}
		if item.IsDailySpecial {
			flags += " [special]"
		}
		fmt.Printf("%-4s %-24s %-10s small %6s  large %6s%s\n",
			item.ID, item.Name, item.Category,
			priceLabel(item.Prices.Small), priceLabel(item.Prices.Large), flags)
	}
	return nil
}

func priceLabel(price float64) string {
	if price <= 0 {
		return "-"
	}
	return fmt.Sprintf("$%.2f", price)
}

func runOrders(c *cli.Context) error {
	cfg := config.MustLoad()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	orders := store.Orders(c.Context)
	active, archived := schedule.Partition(orders)

	printOrders("ACTIVE", active, orders)
	if c.Bool("all") {
		printOrders("ARCHIVE", archived, orders)
	}
	return nil
}

func printOrders(header string, list, all []domain.Order) {
	fmt.Printf("-- %s (%d)\n", header, len(list))
	for _, order := range list {
		warn := ""
		if n := len(schedule.Conflicts(order, all)); n > 0 {
			warn = fmt.Sprintf("  !! %d pickup(s) within 30m", n)
		}
		fmt.Printf("%-40s %-20s %-10s $%.2f  pickup %s%s\n",
			order.ID, order.CustomerName, order.Status, order.Total, order.PickupTime, warn)
	}
}

func runConflicts(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: joshemctl conflicts <order-id>")
	}
	cfg := config.MustLoad()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	orders := store.Orders(c.Context)
	var target *domain.Order
	for i := range orders {
		if orders[i].ID == c.Args().First() {
			target = &orders[i]
			break
		}
	}
	if target == nil {
		return ordering.ErrOrderNotFound
	}

	conflicts := schedule.Conflicts(*target, orders)
	if len(conflicts) == 0 {
		fmt.Println("no overlapping pickups")
		return nil
	}
	for _, other := range conflicts {
		fmt.Printf("%-40s %-20s pickup %s\n", other.ID, other.CustomerName, other.PickupTime)
	}
	return nil
}

func runCalendar(c *cli.Context) error {
	cfg := config.MustLoad()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	from, to := schedule.CalendarWindow(time.Now())
	counts := schedule.PickupCounts(store.Orders(c.Context), from, to)

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		fmt.Printf("%s  %s (%d)\n", day, strings.Repeat("#", counts[day]), counts[day])
	}
	return nil
}

func runPlace(c *cli.Context) error {
	cfg := config.MustLoad()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	lines := make([]ordering.CartLine, 0, len(c.StringSlice("item")))
	for _, spec := range c.StringSlice("item") {
		line, err := parseCartLine(spec)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	svc := ordering.NewService(store)
	order, err := svc.PlaceOrder(c.Context, ordering.Submission{
		CustomerName: c.String("name"),
		Email:        c.String("email"),
		Phone:        c.String("phone"),
		PickupTime:   c.String("pickup"),
		Allergens:    c.String("allergens"),
		Comments:     c.String("comments"),
		Lines:        lines,
	})
	if err != nil {
		return err
	}

	fmt.Printf("order %s placed, total $%.2f\n", order.ID, order.Total)
	if n := schedule.SameDayCount(store.Orders(c.Context), order.ID, order.PickupTime); n > 0 {
		fmt.Printf("note: %d other order(s) scheduled that day\n", n)
	}
	return nil
}

// parseCartLine parses "id:size[:quantity]".
func parseCartLine(spec string) (ordering.CartLine, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ordering.CartLine{}, fmt.Errorf("invalid cart line %q, want id:size[:quantity]", spec)
	}
	line := ordering.CartLine{ItemID: parts[0], Size: parts[1], Quantity: 1}
	if len(parts) == 3 {
		quantity, err := strconv.Atoi(parts[2])
		if err != nil || quantity < 1 {
			return ordering.CartLine{}, fmt.Errorf("invalid quantity in %q", spec)
		}
		line.Quantity = quantity
	}
	return line, nil
}

func runStatus(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: joshemctl status <order-id> <status>")
	}
	status := domain.OrderStatus(c.Args().Get(1))
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusReady,
		domain.StatusCompleted, domain.StatusCancelled:
	default:
		return fmt.Errorf("unknown status %q", status)
	}

	cfg := config.MustLoad()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	svc := ordering.NewService(store)
	result, err := svc.SetStatus(c.Context, c.Args().First(), status)
	if err != nil {
		return err
	}
	if !result.Synced {
		fmt.Println("saved locally; server offline, will sync on the next successful save")
		return nil
	}
	fmt.Println("saved")
	return nil
}

func runPasswd(c *cli.Context) error {
	cfg := config.MustLoad()
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if !store.VerifyPassword(ctx, c.String("current")) {
		return fmt.Errorf("current password rejected")
	}
	if err := store.UpdatePassword(ctx, c.String("new")); err != nil {
		return err
	}
	fmt.Println("password updated")
	return nil
}
