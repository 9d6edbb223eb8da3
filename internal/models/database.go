/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a directed transfer record (append-only, never deleted)
type Transaction struct {
	Id                  int64               `db:"id" json:"id"`
	SenderId            UserId              `db:"sender_id" json:"sender_id"`
	ReceiverId          UserId              `db:"receiver_id" json:"receiver_id"`
	SenderEmail         string              `db:"sender_email" json:"sender_email"`
	ReceiverEmail       string              `db:"receiver_email" json:"receiver_email"`
	Amount              decimal.Decimal     `db:"amount" json:"amount"`
	Memo                *string             `db:"memo" json:"memo"`
	TransactionHash     *string             `db:"transaction_hash" json:"transaction_hash"`
	TransactionType     TransactionType     `db:"transaction_type" json:"transaction_type"`
	Status              TransactionStatus   `db:"status" json:"status"`
	Confirmations       int64               `db:"confirmations" json:"confirmations"`
	BlockNumber         *int64              `db:"block_number" json:"block_number"`
	BlockHash           *string             `db:"block_hash" json:"block_hash"`
	TransactionIndex    *int64              `db:"transaction_index" json:"transaction_index"`
	GasUsed             *int64              `db:"gas_used" json:"gas_used"`
	GasCost             decimal.NullDecimal `db:"gas_cost" json:"gas_cost"`
	ErrorMessage        *string             `db:"error_message" json:"error_message"`
	BlockchainTimestamp *time.Time          `db:"blockchain_timestamp" json:"blockchain_timestamp"`
	CreatedAt           time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time           `db:"updated_at" json:"updated_at"`
}

// PendingTransaction is a row of the pending_transactions view.
// UserId is the sender: only the sender sees an outstanding transfer.
type PendingTransaction struct {
	Id              int64           `db:"id" json:"id"`
	UserId          UserId          `db:"user_id" json:"user_id"`
	ReceiverId      UserId          `db:"receiver_id" json:"receiver_id"`
	SenderEmail     string          `db:"sender_email" json:"sender_email"`
	ReceiverEmail   string          `db:"receiver_email" json:"receiver_email"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Memo            *string         `db:"memo" json:"memo"`
	TransactionHash *string         `db:"transaction_hash" json:"transaction_hash"`
	TransactionType TransactionType `db:"transaction_type" json:"transaction_type"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// TransactionSummary is a per-day, per-user rollup of completed transactions
type TransactionSummary struct {
	UserId            UserId          `db:"user_id" json:"user_id"`
	SummaryDate       Date            `db:"summary_date" json:"summary_date"`
	TotalTransactions int64           `db:"total_transactions" json:"total_transactions"`
	IncomingCount     int64           `db:"incoming_count" json:"incoming_count"`
	OutgoingCount     int64           `db:"outgoing_count" json:"outgoing_count"`
	TotalIncoming     decimal.Decimal `db:"total_incoming" json:"total_incoming"`
	TotalOutgoing     decimal.Decimal `db:"total_outgoing" json:"total_outgoing"`
	TotalGasFees      decimal.Decimal `db:"total_gas_fees" json:"total_gas_fees"`
	NetAmount         decimal.Decimal `db:"net_amount" json:"net_amount"`
	SendCount         int64           `db:"send_count" json:"send_count"`
	ReceiveCount      int64           `db:"receive_count" json:"receive_count"`
	FaucetCount       int64           `db:"faucet_count" json:"faucet_count"`
	BettingCount      int64           `db:"betting_count" json:"betting_count"`
	ContractCount     int64           `db:"contract_count" json:"contract_count"`
}
