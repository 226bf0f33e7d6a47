package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/securepay/internal/application/dto"
	appservice "github.com/turtacn/securepay/internal/application/service"
	domainservice "github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/logger"
)

// Plans are served from the built-in catalog; --server does not apply.
func newPlansCmd(opts *options) *cobra.Command {
	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "Inspect plans, add-ons and quotes",
	}

	newService := func() appservice.PlanAppService {
		return appservice.NewPlanAppService(domainservice.NewPlanCatalog(), nil, nil, logger.NewNoopLogger())
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.commandContext(cmd)
			defer cancel()
			return printJSON(cmd, newService().ListPlans(ctx))
		},
	}

	var addOnsPlan string
	profile := &profileFlags{}
	addOnsCmd := &cobra.Command{
		Use:   "addons",
		Short: "List add-ons with recommendations for a plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &dto.AddOnsRequest{PlanID: addOnsPlan}
			if len(profile.fields()) > 0 {
				req.Profile = &dto.ProfileDTO{
					BusinessName:  profile.businessName,
					Email:         profile.email,
					Website:       profile.website,
					BusinessType:  profile.businessType,
					MonthlyVolume: profile.monthlyVolume,
					Country:       profile.country,
				}
			}
			ctx, cancel := opts.commandContext(cmd)
			defer cancel()
			resp, err := newService().AddOns(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	addOnsCmd.Flags().StringVar(&addOnsPlan, "plan", "", "plan ID")
	_ = addOnsCmd.MarkFlagRequired("plan")
	profile.bind(addOnsCmd)

	var (
		quotePlan string
		addOnIDs  []string
	)
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a plan with add-ons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.commandContext(cmd)
			defer cancel()
			quote, err := newService().Quote(ctx, &dto.QuoteRequest{PlanID: quotePlan, AddOnIDs: addOnIDs})
			if err != nil {
				return err
			}
			return printJSON(cmd, quote)
		},
	}
	quoteCmd.Flags().StringVar(&quotePlan, "plan", "", "plan ID")
	quoteCmd.Flags().StringSliceVar(&addOnIDs, "add-on", nil, "add-on ID, repeatable")
	_ = quoteCmd.MarkFlagRequired("plan")

	plansCmd.AddCommand(listCmd, addOnsCmd, quoteCmd)
	return plansCmd
}
