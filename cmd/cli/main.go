package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/cart"
	"github.com/shopspring/decimal"
)

func main() {
	probeCmd := flag.NewFlagSet("probe", flag.ExitOnError)
	probeURL := probeCmd.String("api", "http://localhost:8000/api/v1/user", "Base URL of the order API")

	quoteCmd := flag.NewFlagSet("quote", flag.ExitOnError)
	quoteMode := quoteCmd.String("mode", "dine-in", "Fulfillment mode: dine-in, takeaway or delivery")

	if len(os.Args) < 2 {
		fmt.Println("expected 'probe' or 'quote' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "probe":
		probeCmd.Parse(os.Args[2:])
		probe(*probeURL)
	case "quote":
		quoteCmd.Parse(os.Args[2:])
		quote(*quoteMode, quoteCmd.Args())
	default:
		fmt.Println("expected 'probe' or 'quote' subcommand")
		os.Exit(1)
	}
}

// probe checks that the order API is reachable and reports latency.
func probe(baseURL string) {
	client := api.New(baseURL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	restaurants, err := client.ListRestaurants(ctx)
	if err != nil {
		log.Fatalf("API unreachable at %s: %v", baseURL, err)
	}

	fmt.Printf("API healthy at %s (%d restaurants, %s)\n", baseURL, len(restaurants), time.Since(start).Round(time.Millisecond))
}

// quote prices a line list given as id:price:qty arguments, using the same
// projection the cart page shows.
func quote(mode string, args []string) {
	m, err := cart.ParseMode(mode)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}
	if len(args) == 0 {
		fmt.Println("usage: quote [-mode MODE] id:price:qty [id:price:qty ...]")
		os.Exit(1)
	}

	var c cart.Cart
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) != 3 {
			log.Fatalf("Invalid line %q, want id:price:qty", arg)
		}
		price, err := decimal.NewFromString(parts[1])
		if err != nil || price.IsNegative() {
			log.Fatalf("Invalid price in %q", arg)
		}
		qty, err := strconv.Atoi(parts[2])
		if err != nil || qty < 1 {
			log.Fatalf("Invalid quantity in %q", arg)
		}
		c = cart.Reduce(c, cart.AddItem{Line: cart.Line{
			ItemID:    parts[0],
			UnitPrice: price,
			Quantity:  qty,
		}})
	}

	draft := cart.Quote(c, m)
	fmt.Printf("Subtotal:     %s\n", draft.Subtotal.StringFixed(2))
	fmt.Printf("Delivery fee: %s\n", draft.DeliveryFee.StringFixed(2))
	fmt.Printf("Tax:          %s\n", draft.Tax.StringFixed(2))
	fmt.Printf("Total:        %s\n", draft.Total.StringFixed(2))
}
