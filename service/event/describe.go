package event

import (
	"fmt"

	"morpho/core"
	"morpho/pkg/contracts"
)

// Describe one line human readable summary of a decoded event
func Describe(event *core.Event) string {
	switch e := event.Data.(type) {
	case *contracts.CreateMarket:
		p := e.MarketParams
		return fmt.Sprintf("Market with id %s was created with params: collateral %s, loan %s, lltv %s, oracle %s, irm %s",
			e.Id.Hex(), p.CollateralToken.Hex(), p.LoanToken.Hex(), p.Lltv, p.Oracle.Hex(), p.Irm.Hex())
	case *contracts.Supply:
		return fmt.Sprintf("User %s supplied %s assets for %s shares on market %s", e.OnBehalf.Hex(), e.Assets, e.Shares, e.Id.Hex())
	case *contracts.Withdraw:
		return fmt.Sprintf("User %s withdrew %s assets for %s shares from market %s", e.OnBehalf.Hex(), e.Assets, e.Shares, e.Id.Hex())
	case *contracts.Borrow:
		return fmt.Sprintf("User %s borrowed %s assets for %s shares on market %s", e.OnBehalf.Hex(), e.Assets, e.Shares, e.Id.Hex())
	case *contracts.Repay:
		return fmt.Sprintf("User %s repaid %s assets for %s shares on market %s", e.OnBehalf.Hex(), e.Assets, e.Shares, e.Id.Hex())
	case *contracts.SupplyCollateral:
		return fmt.Sprintf("User %s supplied %s collateral on market %s", e.OnBehalf.Hex(), e.Assets, e.Id.Hex())
	case *contracts.WithdrawCollateral:
		return fmt.Sprintf("User %s withdrew %s collateral from market %s", e.OnBehalf.Hex(), e.Assets, e.Id.Hex())
	case *contracts.Liquidate:
		return fmt.Sprintf("Borrower %s was liquidated on market %s: repaid %s assets, seized %s collateral, bad debt %s assets",
			e.Borrower.Hex(), e.Id.Hex(), e.RepaidAssets, e.SeizedAssets, e.BadDebtAssets)
	case *contracts.AccrueInterest:
		return fmt.Sprintf("Market %s accrued %s interest at rate %s, %s fee shares", e.Id.Hex(), e.Interest, e.PrevBorrowRate, e.FeeShares)
	case *contracts.VaultDeposit:
		return fmt.Sprintf("User %s deposited %s assets for %s shares", e.Owner.Hex(), e.Assets, e.Shares)
	case *contracts.VaultWithdraw:
		return fmt.Sprintf("User %s withdrew %s assets for %s shares", e.Owner.Hex(), e.Assets, e.Shares)
	case *contracts.Transfer:
		return fmt.Sprintf("User %s transferred %s shares to user %s", e.From.Hex(), e.Value, e.To.Hex())
	case *contracts.UpdateLastTotalAssets:
		return fmt.Sprintf("Vault updated its total assets to %s", e.UpdatedTotalAssets)
	case *contracts.CreateMetaMorpho:
		return fmt.Sprintf("Morpho vault %s at address %s created by %s, for asset %s",
			e.Name, e.MetaMorpho.Hex(), e.Caller.Hex(), e.Asset.Hex())
	}

	return fmt.Sprintf("%s %s at block %d", event.Contract, event.Name, event.Block)
}
