// Command shop is the storefront client: it browses the catalog with
// the same filters the web shop offers, keeps a persistent cart, and
// runs the admin flows (upsert, delete, import/export, sync) against
// the catalog API when a PIN and base URL are configured.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/belledame/storefront/internal/catalog/domain"
	"github.com/belledame/storefront/internal/catalog/filter"
	"github.com/belledame/storefront/internal/shop"
	"github.com/belledame/storefront/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init("shop-cli", true)
	logger.SetLevel(getEnv("LOG_LEVEL", "warn"))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shop <command> [flags]

commands:
  list       browse the catalog (-q, -rubrique, -sous, -categorie, -brand)
  brands     list the distinct brands
  cart       manage the cart: add|inc|dec|rm|clear|show <id>
  checkout   print the order summary and WhatsApp link
  admin      catalog administration: upsert|delete|seed|push|pull|export
  pin        set the local admin PIN`)
}

func newStore(ctx context.Context) (*shop.Store, *shop.State, error) {
	dataDir := getEnv("DATA_DIR", "data")
	taxonomy, err := domain.LoadTaxonomy(filepath.Join(dataDir, "taxonomy.json"))
	if err != nil {
		return nil, nil, err
	}

	state, err := shop.NewState(getEnv("SHOP_STATE_DIR", ".shop"))
	if err != nil {
		return nil, nil, err
	}

	var remote *shop.RemoteClient
	if base := os.Getenv("API_BASE"); base != "" {
		remote = shop.NewRemoteClient(base, os.Getenv("ADMIN_PIN"))
	}

	store := shop.NewStore(state, remote, taxonomy)
	if err := store.Load(ctx, filepath.Join(dataDir, "products.json")); err != nil {
		logger.Logger.Warn().Err(err).Msg("Catalog empty")
	}
	return store, state, nil
}

func run(cmd string, args []string) error {
	ctx := context.Background()

	store, state, err := newStore(ctx)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		return cmdList(store, args)
	case "brands":
		for _, b := range store.Brands() {
			fmt.Println(b)
		}
		return nil
	case "cart":
		return cmdCart(store, state, args)
	case "checkout":
		return cmdCheckout(store, state)
	case "admin":
		return cmdAdmin(ctx, store, args)
	case "pin":
		return cmdPin(store, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdList(store *shop.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	q := fs.String("q", "", "free-text search")
	rubrique := fs.String("rubrique", "", "filter by rubrique")
	sous := fs.String("sous", "", "filter by sous-rubrique")
	categorie := fs.String("categorie", "", "filter by categorie")
	brand := fs.String("brand", "", "filter by brand")
	fs.Parse(args)

	results := store.Filter(filter.Criteria{
		Query:        *q,
		Rubrique:     *rubrique,
		SousRubrique: *sous,
		Categorie:    *categorie,
		Brand:        *brand,
	})
	for _, p := range results {
		fmt.Printf("%-12s %-30s %-16s %8d %s\n", p.ID, p.Name, p.Brand, p.Price, p.Currency)
	}
	fmt.Printf("%d produit(s)\n", len(results))
	return nil
}

func cmdCart(store *shop.Store, state *shop.State, args []string) error {
	cart, err := shop.NewCartStore(state)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"show"}
	}

	op := args[0]
	var id string
	if len(args) > 1 {
		id = args[1]
	}

	switch op {
	case "add":
		if _, ok := store.Find(id); !ok {
			return fmt.Errorf("unknown product %q", id)
		}
		return cart.Add(id)
	case "inc":
		return cart.Increment(id)
	case "dec":
		return cart.Decrement(id)
	case "rm":
		return cart.Remove(id)
	case "clear":
		return cart.Clear()
	case "show":
		catalog := store.Products()
		for _, line := range cart.Lines(catalog) {
			fmt.Printf("%d x %-30s %8d %s\n", line.Qty, line.Product.Name, line.LineTotal, line.Product.Currency)
		}
		fmt.Printf("Total: %d %s (%d article(s))\n", cart.Total(catalog), domain.DefaultCurrency, cart.Count())
		return nil
	default:
		return fmt.Errorf("unknown cart operation %q", op)
	}
}

func cmdCheckout(store *shop.Store, state *shop.State) error {
	cart, err := shop.NewCartStore(state)
	if err != nil {
		return err
	}
	catalog := store.Products()
	lines := cart.Lines(catalog)
	if len(lines) == 0 {
		return errors.New("cart is empty")
	}

	for _, line := range lines {
		fmt.Printf("- %d x %s (%s) : %d %s\n", line.Qty, line.Product.Name, line.Product.Brand, line.LineTotal, line.Product.Currency)
	}
	fmt.Printf("Total: %d %s\n", cart.Total(catalog), domain.DefaultCurrency)

	if phone := os.Getenv("SHOP_PHONE"); phone != "" {
		fmt.Printf("https://wa.me/%s\n", phone)
	}
	return nil
}

func cmdAdmin(ctx context.Context, store *shop.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("admin requires an operation: upsert|delete|seed|push|pull|export")
	}

	op := args[0]
	args = args[1:]

	switch op {
	case "upsert":
		return cmdAdminUpsert(ctx, store, args)
	case "delete":
		if len(args) != 1 {
			return errors.New("admin delete <id>")
		}
		return reportSync(store.Delete(ctx, args[0]))
	case "seed":
		if len(args) != 1 {
			return errors.New("admin seed <file.json>")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		count, err := store.Import(ctx, f)
		if err := reportSync(err); err != nil {
			return err
		}
		fmt.Printf("imported %d produit(s)\n", count)
		return nil
	case "push":
		return store.PushAll(ctx)
	case "pull":
		return store.PullRemote(ctx)
	case "export":
		return store.Export(os.Stdout)
	default:
		return fmt.Errorf("unknown admin operation %q", op)
	}
}

func cmdAdminUpsert(ctx context.Context, store *shop.Store, args []string) error {
	fs := flag.NewFlagSet("admin upsert", flag.ExitOnError)
	id := fs.String("id", "", "product id (generated when empty)")
	name := fs.String("name", "", "product name")
	brand := fs.String("brand", "", "brand")
	price := fs.String("price", "0", "price in FCFA")
	rubrique := fs.String("rubrique", "", "rubrique")
	sous := fs.String("sous", "", "sous-rubrique")
	categorie := fs.String("categorie", "", "categorie")
	desc := fs.String("desc", "", "description")
	image := fs.String("image", "", "image URL or data URI")
	unlock := fs.Bool("unlock", false, "allow changing name/brand/taxonomy of an existing record")
	fs.Parse(args)

	priceVal, err := strconv.Atoi(*price)
	if err != nil {
		return &domain.ValidationError{Message: "price must be an integer"}
	}

	p := domain.Product{
		ID:           *id,
		Name:         *name,
		Brand:        *brand,
		Price:        priceVal,
		Currency:     domain.DefaultCurrency,
		Rubrique:     *rubrique,
		SousRubrique: *sous,
		Categorie:    *categorie,
		Description:  *desc,
		Active:       true,
	}
	if *image != "" {
		p.Images = []string{*image}
	}

	// Editing an existing record defaults to the locked quick-edit path.
	_, exists := store.Find(p.ID)
	saved, err := store.Upsert(ctx, p, shop.UpsertOptions{Locked: exists && !*unlock})
	if err := reportSync(err); err != nil {
		return err
	}
	fmt.Println("saved", saved.ID)
	return nil
}

func cmdPin(store *shop.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("pin <value>")
	}
	if ok, err := store.CheckPIN(args[0]); err != nil {
		return err
	} else if ok {
		fmt.Println("PIN already set")
		return nil
	}
	if err := store.SetPIN(args[0]); err != nil {
		return err
	}
	fmt.Println("PIN set")
	return nil
}

// reportSync demotes a best-effort mirror failure to a warning: the
// local change is already committed.
func reportSync(err error) error {
	var rerr *domain.RemoteSyncError
	if errors.As(err, &rerr) {
		fmt.Fprintln(os.Stderr, "warning: saved locally,", rerr.Error())
		return nil
	}
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
