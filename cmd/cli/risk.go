package cli

import (
	"github.com/spf13/cobra"
)

// profileFlags collect an optional business profile from the command line.
type profileFlags struct {
	businessName  string
	email         string
	website       string
	businessType  string
	monthlyVolume string
	country       string
}

func (p *profileFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.businessName, "business-name", "", "legal business name")
	cmd.Flags().StringVar(&p.email, "email", "", "contact email")
	cmd.Flags().StringVar(&p.website, "website", "", "business website")
	cmd.Flags().StringVar(&p.businessType, "business-type", "", "ecommerce, saas, fintech, healthcare, education, nonprofit or other")
	cmd.Flags().StringVar(&p.monthlyVolume, "monthly-volume", "", "50k-100k, 100k-250k, 250k-1m or 1m+")
	cmd.Flags().StringVar(&p.country, "country", "", "ISO country code")
}

// fields returns the profile as request fields; empty flags are omitted.
func (p *profileFlags) fields() map[string]interface{} {
	m := map[string]interface{}{}
	for key, value := range map[string]string{
		"business_name":  p.businessName,
		"email":          p.email,
		"website":        p.website,
		"business_type":  p.businessType,
		"monthly_volume": p.monthlyVolume,
		"country":        p.country,
	} {
		if value != "" {
			m[key] = value
		}
	}
	return m
}

func newScoreCmd(opts *options) *cobra.Command {
	profile := &profileFlags{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Calculate the risk score of a business profile",
		Long: `Calculate the risk score of a business profile. Without any profile
flag the default score for an unknown business is returned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]interface{}{}
			if fields := profile.fields(); len(fields) > 0 {
				req["profile"] = fields
			}
			return opts.callRisk(cmd, "Score", req)
		},
	}
	profile.bind(cmd)
	return cmd
}

func newLevelCmd(opts *options) *cobra.Command {
	var score float64
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Classify a risk score into a risk tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.callRisk(cmd, "Classify", map[string]interface{}{"score": score})
		},
	}
	cmd.Flags().Float64Var(&score, "score", 0, "risk score to classify")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func newInsightsCmd(opts *options) *cobra.Command {
	var (
		score  float64
		domain string
	)
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "List the security findings for a risk score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]interface{}{"score": score}
			if domain != "" {
				req["domain"] = domain
			}
			return opts.callRisk(cmd, "Insights", req)
		},
	}
	cmd.Flags().Float64Var(&score, "score", 0, "risk score")
	cmd.Flags().StringVar(&domain, "domain", "", "domain the findings refer to")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func newVulnerabilitiesCmd(opts *options) *cobra.Command {
	var score float64
	cmd := &cobra.Command{
		Use:     "vulnerabilities",
		Aliases: []string{"vulns"},
		Short:   "List the vulnerabilities implied by a risk score",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.callRisk(cmd, "Vulnerabilities", map[string]interface{}{"score": score})
		},
	}
	cmd.Flags().Float64Var(&score, "score", 0, "risk score")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func newAssessCmd(opts *options) *cobra.Command {
	assessCmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a full signup or domain assessment",
	}

	profile := &profileFlags{}
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Assess a merchant signup form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.callRisk(cmd, "AssessSignup", profile.fields())
		},
	}
	profile.bind(signupCmd)

	domainCmd := &cobra.Command{
		Use:   "domain <domain>",
		Short: "Produce the landing-page report for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.callRisk(cmd, "AssessDomain", map[string]interface{}{"domain": args[0]})
		},
	}

	assessCmd.AddCommand(signupCmd, domainCmd)
	return assessCmd
}
