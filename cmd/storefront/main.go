// cmd/storefront/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/storefront"
)

// The storefront command is a small shopping client against the API. Cart and
// session state persist under the configured data directory, so quantities and
// the signed-in user survive between invocations.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	storage, err := storefront.NewFileStorage(cfg.Storefront.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	sessions := storefront.NewSessionStore(storage)
	cart := storefront.NewCartStore(storage)
	client := storefront.NewClient(cfg.Storefront.APIBaseURL, sessions)

	if len(os.Args) < 2 {
		usage()
	}

	if err := run(os.Args[1], os.Args[2:], client, sessions, cart); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(command string, args []string, client *storefront.Client, sessions *storefront.SessionStore, cart *storefront.CartStore) error {
	switch command {
	case "login":
		if len(args) != 2 {
			usage()
		}
		info, err := client.Login(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", info.Name)
		return nil

	case "register":
		if len(args) != 3 {
			usage()
		}
		info, err := client.Register(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Account created, signed in as %s\n", info.Name)
		return nil

	case "logout":
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil

	case "whoami":
		if sessions.Current() == nil {
			fmt.Println("Not signed in")
			return nil
		}
		profile, err := client.FetchProfile()
		if err != nil {
			return err
		}
		role := "customer"
		if profile.IsAdmin {
			role = "admin"
		}
		fmt.Printf("%s <%s> (%s)\n", profile.Name, profile.Email, role)
		return nil

	case "products":
		products, err := client.FetchProducts()
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%-4d %-40s $%.2f  (%d in stock)\n", p.ID, p.Name, p.Price, p.CountInStock)
		}
		return nil

	case "add":
		if len(args) != 1 {
			usage()
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		product, err := client.FetchProduct(id)
		if err != nil {
			return err
		}
		if err := cart.AddItem(storefront.CartProduct{
			ID:    strconv.FormatUint(uint64(product.ID), 10),
			Name:  product.Name,
			Price: product.Price,
			Image: product.Image,
		}); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", product.Name)
		return printCart(cart)

	case "remove":
		if len(args) != 1 {
			usage()
		}
		if err := cart.RemoveItem(args[0]); err != nil {
			return err
		}
		return printCart(cart)

	case "qty":
		if len(args) != 2 {
			usage()
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		if err := cart.UpdateQuantity(args[0], quantity); err != nil {
			return err
		}
		return printCart(cart)

	case "cart":
		return printCart(cart)

	case "clear":
		if err := cart.Clear(); err != nil {
			return err
		}
		fmt.Println("Cart cleared")
		return nil

	default:
		usage()
		return nil
	}
}

func printCart(cart *storefront.CartStore) error {
	items := cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%-6s %-40s %d x $%.2f\n", item.ProductID, item.Name, item.Quantity, item.UnitPrice)
	}
	totals := cart.Totals()
	fmt.Printf("Total: %d items, $%.2f\n", totals.TotalItemCount, totals.TotalPrice)
	return nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid product ID %q", s)
	}
	return uint(id), nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: storefront <command> [args]

Commands:
  register <name> <email> <password>
  login <email> <password>
  logout
  whoami
  products
  add <product-id>
  remove <product-id>
  qty <product-id> <quantity>
  cart
  clear`)
	os.Exit(2)
}
