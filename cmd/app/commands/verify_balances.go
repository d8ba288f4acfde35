package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	ledgerDomain "github.com/allisson/finledger/internal/ledger/domain"
	ledgerUsecase "github.com/allisson/finledger/internal/ledger/usecase"
)

// RunVerifyBalances recomputes every bank account balance and credit card bill from the
// transactions behind them and reports the rows whose cached value drifted. Balances are
// never rewritten. Any drift makes the command fail.
func RunVerifyBalances(
	ctx context.Context,
	auditUseCase ledgerUsecase.BalanceAuditUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q (valid options: text, json)", format)
	}

	logger.Info("verifying cached balances")

	report, err := auditUseCase.Verify(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify balances: %w", err)
	}

	if format == "json" {
		if err := outputBalancesJSON(writer, report); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputBalancesText(writer, report)
	}

	logger.Info("verification completed",
		slog.Int("accounts_checked", report.AccountsChecked),
		slog.Int("cards_checked", report.CardsChecked),
		slog.Int("drifts", len(report.Drifts)),
	)

	if len(report.Drifts) > 0 {
		return fmt.Errorf("balance check failed: %d drifted aggregate(s)", len(report.Drifts))
	}
	return nil
}

func outputBalancesText(writer io.Writer, report *ledgerDomain.DriftReport) {
	_, _ = fmt.Fprintf(writer, "Balance Verification\n")
	_, _ = fmt.Fprintf(writer, "====================\n\n")
	_, _ = fmt.Fprintf(writer, "Accounts Checked: %d\n", report.AccountsChecked)
	_, _ = fmt.Fprintf(writer, "Cards Checked:    %d\n", report.CardsChecked)
	_, _ = fmt.Fprintf(writer, "Drifts:           %d\n\n", len(report.Drifts))

	if len(report.Drifts) == 0 {
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
		return
	}

	for _, drift := range report.Drifts {
		_, _ = fmt.Fprintf(writer,
			"  - %s %s (%s) owner=%s cached=%s expected=%s difference=%s\n",
			drift.Entity,
			drift.ID,
			drift.Name,
			drift.UserID,
			drift.Cached.StringFixed(2),
			drift.Expected.StringFixed(2),
			drift.Difference().StringFixed(2),
		)
	}
	_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
}

type driftOutput struct {
	Entity     string `json:"entity"`
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Cached     string `json:"cached"`
	Expected   string `json:"expected"`
	Difference string `json:"difference"`
}

type balancesOutput struct {
	AccountsChecked int           `json:"accounts_checked"`
	CardsChecked    int           `json:"cards_checked"`
	Drifts          []driftOutput `json:"drifts"`
	Passed          bool          `json:"passed"`
}

func outputBalancesJSON(writer io.Writer, report *ledgerDomain.DriftReport) error {
	result := balancesOutput{
		AccountsChecked: report.AccountsChecked,
		CardsChecked:    report.CardsChecked,
		Drifts:          make([]driftOutput, 0, len(report.Drifts)),
		Passed:          len(report.Drifts) == 0,
	}
	for _, drift := range report.Drifts {
		result.Drifts = append(result.Drifts, driftOutput{
			Entity:     drift.Entity.Tag(),
			ID:         drift.ID.String(),
			UserID:     drift.UserID.String(),
			Name:       drift.Name,
			Cached:     drift.Cached.StringFixed(2),
			Expected:   drift.Expected.StringFixed(2),
			Difference: drift.Difference().StringFixed(2),
		})
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
