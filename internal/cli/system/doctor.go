package system

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storeReachable = true
	}

	// Check 2: plan invariants hold for every stored plan
	if storeReachable {
		plans, err := ctx.Store.GetAllPlans()
		if err != nil {
			fmt.Printf("❌ Plan scan: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			bad := 0
			for _, p := range plans {
				if err := p.Validate(); err != nil {
					bad++
					fmt.Printf("   Invalid plan %s: %v\n", p.ID, err)
				}
			}
			if bad > 0 {
				fmt.Printf("❌ Plan invariants: FAIL (%d of %d plans invalid)\n", bad, len(plans))
				hasError = true
			} else {
				fmt.Printf("✓ Plan invariants: OK (%d plans)\n", len(plans))
			}
		}
	} else {
		fmt.Printf("⊘ Plan invariants: SKIPPED (storage not reachable)\n")
	}

	// Check 3: OS keyring availability (informational)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: available\n")
	} else {
		fmt.Printf("⊘ OS keyring: unavailable (Postgres credentials must come from the environment)\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
