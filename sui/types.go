package sui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/easypmnt/sui-swap-api/utils"
)

type (
	// Uint64 is a u64 that the node may encode either as a JSON string or number.
	Uint64 uint64

	// ObjectOwner is the owner of an on-chain object.
	ObjectOwner struct {
		AddressOwner         string `json:"AddressOwner,omitempty"`
		ObjectOwner          string `json:"ObjectOwner,omitempty"`
		InitialSharedVersion *Uint64
		Immutable            bool
	}

	// ObjectData is the part of sui_getObject result the builder needs.
	ObjectData struct {
		ObjectID string       `json:"objectId"`
		Version  Uint64       `json:"version"`
		Digest   string       `json:"digest"`
		Type     string       `json:"type,omitempty"`
		Owner    *ObjectOwner `json:"owner,omitempty"`
	}

	objectResponse struct {
		Data  *ObjectData     `json:"data,omitempty"`
		Error json.RawMessage `json:"error,omitempty"`
	}

	// Coin is an owned coin object.
	Coin struct {
		CoinType            string `json:"coinType"`
		CoinObjectID        string `json:"coinObjectId"`
		Version             Uint64 `json:"version"`
		Digest              string `json:"digest"`
		Balance             Uint64 `json:"balance"`
		PreviousTransaction string `json:"previousTransaction,omitempty"`
	}

	// CoinPage is one page of suix_getCoins.
	CoinPage struct {
		Data        []Coin  `json:"data"`
		NextCursor  *string `json:"nextCursor"`
		HasNextPage bool    `json:"hasNextPage"`
	}

	// GasCostSummary is the gas usage of an executed transaction.
	GasCostSummary struct {
		ComputationCost         Uint64 `json:"computationCost"`
		StorageCost             Uint64 `json:"storageCost"`
		StorageRebate           Uint64 `json:"storageRebate"`
		NonRefundableStorageFee Uint64 `json:"nonRefundableStorageFee"`
	}

	// ExecutionStatus is the outcome of an executed transaction.
	ExecutionStatus struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	// DevInspectResults is the result of sui_devInspectTransactionBlock.
	DevInspectResults struct {
		Effects struct {
			Status  ExecutionStatus `json:"status"`
			GasUsed GasCostSummary  `json:"gasUsed"`
		} `json:"effects"`
		Error string `json:"error,omitempty"`
	}

	// Balance represents the balance of a coin type owned by an account.
	Balance struct {
		Amount         uint64  `json:"amount"`           // Balance in minimal units. E.g. 1000000000 (1 SUI) or 1000000 (1 USDC).
		Decimals       uint8   `json:"decimals"`         // Number of decimals. E.g. 9 for SUI, 6 for USDC.
		UIAmount       float64 `json:"ui_amount"`        // Balance in UI units. E.g. 1 (1 SUI) or 1.000001 (1.000001 USDC).
		UIAmountString string  `json:"ui_amount_string"` // Balance in UI units as a string. E.g. "1" (1 SUI) or "1.000001" (1.000001 USDC).
	}
)

// NewBalance returns a new Balance instance.
func NewBalance(amount uint64, decimals uint8) Balance {
	return Balance{
		Amount:         amount,
		Decimals:       decimals,
		UIAmount:       utils.AmountToFloat64(amount, decimals),
		UIAmountString: utils.AmountToString(amount, decimals),
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *Uint64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 %s: %w", data, err)
	}
	*u = Uint64(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (u Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

// UnmarshalJSON decodes every owner variant: {"AddressOwner": ..},
// {"ObjectOwner": ..}, {"Shared": {"initial_shared_version": ..}} and "Immutable".
func (o *ObjectOwner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Immutable" {
			return fmt.Errorf("unknown object owner: %s", s)
		}
		*o = ObjectOwner{Immutable: true}
		return nil
	}

	var raw struct {
		AddressOwner string `json:"AddressOwner"`
		ObjectOwner  string `json:"ObjectOwner"`
		Shared       *struct {
			InitialSharedVersion Uint64 `json:"initial_shared_version"`
		} `json:"Shared"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode object owner: %w", err)
	}

	*o = ObjectOwner{AddressOwner: raw.AddressOwner, ObjectOwner: raw.ObjectOwner}
	if raw.Shared != nil {
		v := raw.Shared.InitialSharedVersion
		o.InitialSharedVersion = &v
	}

	return nil
}

// IsShared reports whether the object is shared.
func (o *ObjectOwner) IsShared() bool {
	return o != nil && o.InitialSharedVersion != nil
}

// Fee returns the total gas fee in MIST: computation + storage - rebate.
// A rebate larger than the cost gives a negative fee.
func (g GasCostSummary) Fee() int64 {
	return int64(g.ComputationCost) + int64(g.StorageCost) - int64(g.StorageRebate)
}
