package command

import (
	"fmt"

	"github.com/dwarthen/coffeeshops/pkg/adapter/seed/csvseed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed data related actions",
}

var seedCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Loads the configured seed source and reports its contents",
	Long: `Loads the configured seed source (CSV file, S3 object, or
PostgreSQL table) into a fresh registry exactly as the web server would
do at startup, reporting the number of loaded coffee shops and the ID
which will be assigned to the next created coffee shop.
No web server is started.`,
	Args: cobra.NoArgs,
	RunE: checkSeeds,
}

var seedImportCmd = &cobra.Command{
	Use:   "import /path/of/locations.csv",
	Short: "Imports a seed CSV file into the PostgreSQL seed table",
	Long: `Parses the given CSV file (with id,name,address,lat,lon lines)
and writes its coffee shops into the coffee_shops table of the database
which is configured by the seed.database.url setting (or DATABASE_URL),
creating that table if it is missing. Rows with the same IDs are
overwritten. Thereafter, the postgres seed source may be used.`,
	Args: cobra.ExactArgs(1),
	RunE: importSeeds,
}

func checkSeeds(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	_, registry, err := newSeededUseCase(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"loaded %d coffee shops from %s, next id is %d\n",
		registry.Len(), c.Seed, registry.NextID(),
	)
	return nil
}

func importSeeds(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	f := csvseed.File{Path: args[0]}
	shops, err := f.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading seeds: %w", err)
	}
	r, closeRepo, err := c.Seed.Database.NewSeedsRepo(ctx)
	if err != nil {
		return fmt.Errorf("creating seeds repo: %w", err)
	}
	defer closeRepo()
	if err = r.Import(ctx, shops); err != nil {
		return fmt.Errorf("importing seeds: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d coffee shops\n", len(shops))
	return nil
}

func init() {
	seedCmd.AddCommand(seedCheckCmd, seedImportCmd)
	rootCmd.AddCommand(seedCmd)
}
