package ledgerv1

const (
	TransferStatusOK               = "ok"
	TransferStatusAlreadyProcessed = "already_processed"
)

type CreateAccountRequest struct {
	Currency string `json:"currency"`
	Balance  int64  `json:"balance"`
}

type CreateAccountResponse struct {
	Id int32 `json:"id"`
}

type GetAccountRequest struct {
	Id int32 `json:"id"`
}

type Account struct {
	Id               int32  `json:"id"`
	Currency         string `json:"currency"`
	Balance          int64  `json:"balance"`
	BalanceFormatted string `json:"balance_formatted"`
	Version          int64  `json:"version"`
}

type TransferRequest struct {
	OperationId int32 `json:"operation_id"`
	AccountFrom int32 `json:"account_from"`
	AccountTo   int32 `json:"account_to"`
	Amount      int64 `json:"amount"`
}

type TransferResponse struct {
	Status string `json:"status"`
}

type ListLegsRequest struct {
	OperationId int32 `json:"operation_id"`
}

type Leg struct {
	Id        string `json:"id"`
	AccountId int32  `json:"account_id"`
	Kind      string `json:"kind"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type ListLegsResponse struct {
	OperationId int32  `json:"operation_id"`
	Legs        []*Leg `json:"legs"`
}
