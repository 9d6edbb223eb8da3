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

// RecordTransactionRequest is the body of POST ?action=record
type RecordTransactionRequest struct {
	SenderId        UserId              `json:"sender_id"`
	ReceiverId      UserId              `json:"receiver_id"`
	SenderEmail     string              `json:"sender_email"`
	ReceiverEmail   string              `json:"receiver_email"`
	Amount          decimal.NullDecimal `json:"amount"`
	Memo            *string             `json:"memo,omitempty"`
	TransactionHash string              `json:"transaction_hash,omitempty"`
	TransactionType string              `json:"transaction_type,omitempty"` // "send", "receive", "faucet", "betting", "contract"
	Status          string              `json:"status,omitempty"`
}

// UpdateStatusRequest is the body of POST ?action=update_status sent by the chain watcher
type UpdateStatusRequest struct {
	TransactionHash     string              `json:"transaction_hash"`
	Status              string              `json:"status"`
	Confirmations       *int64              `json:"confirmations,omitempty"`
	BlockNumber         *int64              `json:"block_number,omitempty"`
	BlockHash           *string             `json:"block_hash,omitempty"`
	TransactionIndex    *int64              `json:"transaction_index,omitempty"`
	GasUsed             *int64              `json:"gas_used,omitempty"`
	GasCost             decimal.NullDecimal `json:"gas_cost"`
	ErrorMessage        *string             `json:"error_message,omitempty"`
	BlockchainTimestamp *time.Time          `json:"blockchain_timestamp,omitempty"`
}

// HistoryQuery carries the parsed parameters of GET ?action=history
type HistoryQuery struct {
	UserId        UserId
	WalletAddress string
	Limit         int
	Offset        int
	Type          string
}

// TransactionPage is one page of a user's visible history
type TransactionPage struct {
	Transactions []Transaction
	Total        int
	Limit        int
	Offset       int
}

type RecordTransactionResponse struct {
	Success       bool   `json:"success"`
	TransactionId int64  `json:"transaction_id"`
	Message       string `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HistoryResponse struct {
	Success      bool          `json:"success"`
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
}

type PendingResponse struct {
	Success             bool                 `json:"success"`
	PendingTransactions []PendingTransaction `json:"pending_transactions"`
}

type SummaryResponse struct {
	Success   bool                 `json:"success"`
	Summaries []TransactionSummary `json:"summaries"`
	Days      int                  `json:"days"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
