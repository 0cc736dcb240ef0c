package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"steel-procurement/internal/api/models"
	"steel-procurement/internal/supplier"
)

type suppliersOptions struct {
	file         string
	city         string
	state        string
	lat          float64
	lon          float64
	demand       float64
	budget       float64
	maxSuppliers int
	points       int
}

func newSuppliersCmd(root *rootOptions) *cobra.Command {
	o := &suppliersOptions{}
	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Rank manufacturers by delivered cost and carbon at a project site",
		Long: `Prices every manufacturer delivered to the site, cheapest first.
With --budget, also prints the cost/emissions trade-off menu for the order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuppliers(cmd, root, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.file, "file", "", "manufacturer CSV (default: suppliers.file from config)")
	f.StringVar(&o.city, "city", "", "project city")
	f.StringVar(&o.state, "state", "", "project state")
	f.Float64Var(&o.lat, "lat", 0, "project latitude (with --lon, instead of --city/--state)")
	f.Float64Var(&o.lon, "lon", 0, "project longitude")
	f.Float64Var(&o.demand, "demand", 0, "order size in tons (default: simulation.default_demand_tons)")
	f.Float64Var(&o.budget, "budget", 0, "order budget in USD; enables the trade-off menu")
	f.IntVar(&o.maxSuppliers, "max-suppliers", 0, "most suppliers in one plan (default: suppliers.default_max_suppliers)")
	f.IntVar(&o.points, "points", 0, "plans in the menu (default: suppliers.default_menu_points)")
	return cmd
}

func runSuppliers(cmd *cobra.Command, root *rootOptions, o *suppliersOptions) error {
	cfg := root.cfg
	file := o.file
	if file == "" {
		file = cfg.Suppliers.File
	}
	if file == "" {
		return errors.New("no manufacturer file: pass --file or set suppliers.file")
	}
	catalog, err := supplier.LoadCatalog(file)
	if err != nil {
		return err
	}

	var lat, lon *float64
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		lat, lon = &o.lat, &o.lon
	}
	site, err := supplier.ResolveSite(o.city, o.state, lat, lon)
	if err != nil {
		return err
	}
	offers, err := catalog.LandedCosts(site)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Site %.4f, %.4f\n\n", site.Lat, site.Lon)
	fmt.Fprintf(out, "%-32s %-12s %9s %9s %10s %10s\n", "manufacturer", "port", "land km", "sea km", "$/ton", "tCO2/t")
	for _, of := range offers {
		port := of.Port
		if port == "" {
			port = "-"
		}
		fmt.Fprintf(out, "%-32s %-12s %9.0f %9.0f %10.2f %10.4f\n",
			of.Manufacturer, port, of.LandKm, of.SeaKm, of.CostPerTon, of.CarbonPerTon)
	}

	if o.budget == 0 {
		return nil
	}
	req := supplier.MenuRequest{
		DemandTons:   cfg.Simulation.DefaultDemandTons,
		BudgetUSD:    o.budget,
		MaxSuppliers: cfg.Suppliers.DefaultMaxSuppliers,
		Points:       cfg.Suppliers.DefaultMenuPoints,
	}
	if o.demand != 0 {
		req.DemandTons = o.demand
	}
	if o.maxSuppliers != 0 {
		req.MaxSuppliers = o.maxSuppliers
	}
	if o.points != 0 {
		req.Points = o.points
	}
	plans, err := supplier.Menu(offers, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTrade-off menu: %.0f t, budget $%s M, up to %d suppliers\n\n",
		req.DemandTons, models.FormatMillions(req.BudgetUSD), req.MaxSuppliers)
	fmt.Fprintf(out, "%-28s %12s %14s  %s\n", "plan", "cost $M", "tCO2e", "allocation (t)")
	for _, p := range plans {
		parts := make([]string, 0, len(p.Allocations))
		for _, a := range p.Allocations {
			parts = append(parts, fmt.Sprintf("%s=%.1f", a.Manufacturer, a.Tons))
		}
		fmt.Fprintf(out, "%-28s %12s %14.3f  %s\n",
			p.Label, models.FormatMillions(p.TotalCostUSD), p.TotalEmissions, strings.Join(parts, ", "))
	}
	return nil
}
