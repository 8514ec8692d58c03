package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/retrodex/api/pkg/pokedex"
)

var (
	officialBaseURL string
	backendBaseURL  string
	token           string
)

func main() {
	godotenv.Load()

	root := &cobra.Command{
		Use:   "pokedex",
		Short: "Look up Pokemon from the official catalog and the custom store",
	}
	root.PersistentFlags().StringVar(&officialBaseURL, "api", envOr("POKEAPI_URL", pokedex.DefaultOfficialBaseURL), "official catalog base URL")
	root.PersistentFlags().StringVar(&backendBaseURL, "backend", envOr("BACKEND_URL", "http://localhost:8080"), "custom store base URL")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("POKEDEX_TOKEN"), "bearer token for authenticated requests")

	root.AddCommand(lookupCmd(), chainCmd(), trendingCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newResolver() (*pokedex.Resolver, *pokedex.OfficialClient) {
	official := pokedex.NewOfficialClient(officialBaseURL)
	custom := pokedex.NewCustomClient(backendBaseURL, token)
	return pokedex.NewResolver(pokedex.NewCache(), official, custom), official
}

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <name|id>",
		Short: "Resolve a Pokemon by name or numeric id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, _ := newResolver()
			record, err := resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				if pokedex.IsNotFound(err) {
					fmt.Printf("No Pokemon matches %q\n", args[0])
					return nil
				}
				return err
			}
			printRecord(record)
			return nil
		},
	}
}

func chainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain <name|id>",
		Short: "Show the evolution chain for a Pokemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, official := newResolver()
			record, err := resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				if pokedex.IsNotFound(err) {
					fmt.Printf("No Pokemon matches %q\n", args[0])
					return nil
				}
				return err
			}

			builder := pokedex.NewChainBuilder(official, resolver)
			chain, err := builder.BuildChain(cmd.Context(), record)
			if err != nil {
				if pokedex.IsNoEvolutionData(err) {
					fmt.Printf("%s has no evolution data\n", record.Name)
					return nil
				}
				return err
			}
			printStage(chain, 0)
			return nil
		},
	}
}

func trendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show the most viewed custom Pokemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			custom := pokedex.NewCustomClient(backendBaseURL, token)
			records, err := custom.Trending(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No trending custom Pokemon yet")
				return nil
			}
			for i, record := range records {
				fmt.Printf("%2d. #%d %s (%s)\n", i+1, record.ID, record.Name, strings.Join(record.Types, "/"))
			}
			return nil
		},
	}
}

func printRecord(record *pokedex.Record) {
	kind := "official"
	if record.IsCustom {
		kind = "custom"
	}
	fmt.Printf("#%d %s [%s]\n", record.ID, record.Name, kind)
	fmt.Printf("  types:  %s\n", strings.Join(record.Types, "/"))
	fmt.Printf("  height: %.1f m\n", float64(record.Height)/10)
	fmt.Printf("  weight: %.1f kg\n", float64(record.Weight)/10)
	if record.Sprite != "" {
		fmt.Printf("  sprite: %s\n", record.Sprite)
	}
	if record.FlavorText != "" {
		fmt.Printf("  %s\n", record.FlavorText)
	}
}

func printStage(stage *pokedex.Stage, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + stage.Name
	if stage.Trigger != nil {
		line += " (" + describeTrigger(stage.Trigger) + ")"
	}
	fmt.Println(line)
	for _, child := range stage.Children {
		printStage(child, depth+1)
	}
}

func describeTrigger(detail *pokedex.EvolutionDetail) string {
	parts := []string{}
	if detail.Trigger != "" {
		parts = append(parts, detail.Trigger)
	}
	if detail.MinLevel != nil {
		parts = append(parts, fmt.Sprintf("level %d", *detail.MinLevel))
	}
	if detail.Item != "" {
		parts = append(parts, "item "+detail.Item)
	}
	if detail.HeldItem != "" {
		parts = append(parts, "holding "+detail.HeldItem)
	}
	if detail.TimeOfDay != "" {
		parts = append(parts, detail.TimeOfDay)
	}
	if detail.MinHappiness != nil {
		parts = append(parts, fmt.Sprintf("happiness %d", *detail.MinHappiness))
	}
	if detail.Conditions != "" {
		parts = append(parts, detail.Conditions)
	}
	return strings.Join(parts, ", ")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
