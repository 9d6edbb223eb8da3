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

package api

import (
	"context"
	"errors"
	"strings"

	"ledgerly/internal/models"
	"ledgerly/internal/store"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// RecordTransaction validates and appends a new pending record, returning its id
func (s *LedgerService) RecordTransaction(ctx context.Context, req models.RecordTransactionRequest) (int64, error) {
	// Required fields are reported in a fixed order
	switch {
	case req.SenderId == 0:
		return 0, ValidationError("Missing required field: sender_id")
	case req.ReceiverId == 0:
		return 0, ValidationError("Missing required field: receiver_id")
	case strings.TrimSpace(req.SenderEmail) == "":
		return 0, ValidationError("Missing required field: sender_email")
	case strings.TrimSpace(req.ReceiverEmail) == "":
		return 0, ValidationError("Missing required field: receiver_email")
	case !req.Amount.Valid:
		return 0, ValidationError("Missing required field: amount")
	}

	if req.SenderId < 0 || req.ReceiverId < 0 {
		return 0, ValidationError("sender_id and receiver_id must be positive")
	}
	if !req.Amount.Decimal.IsPositive() {
		return 0, ValidationError("Amount must be greater than zero")
	}
	if req.Amount.Decimal.Exponent() < -maxAmountScale {
		return 0, ValidationError("Amount supports at most %d decimal places", maxAmountScale)
	}

	transactionType := models.TypeSend
	if req.TransactionType != "" {
		parsed, err := models.ParseTransactionType(req.TransactionType)
		if err != nil {
			return 0, ValidationError("Invalid transaction_type: %s", req.TransactionType)
		}
		transactionType = parsed
	}

	if req.Status != "" && models.TransactionStatus(req.Status) != models.StatusPending {
		return 0, ValidationError("New transactions must start as pending, got status: %s", req.Status)
	}

	var transactionHash *string
	if hash := strings.TrimSpace(req.TransactionHash); hash != "" {
		transactionHash = &hash
	}

	id, err := s.store.AppendTransaction(ctx, store.AppendParams{
		SenderId:        req.SenderId,
		ReceiverId:      req.ReceiverId,
		SenderEmail:     req.SenderEmail,
		ReceiverEmail:   req.ReceiverEmail,
		Amount:          req.Amount.Decimal,
		Memo:            req.Memo,
		TransactionHash: transactionHash,
		TransactionType: transactionType,
		Status:          models.StatusPending,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateTransaction) {
			return 0, ConflictError("Transaction hash already recorded", err)
		}
		zap.L().Error("Failed to record transaction",
			zap.Int64("sender_id", int64(req.SenderId)),
			zap.Int64("receiver_id", int64(req.ReceiverId)),
			zap.String("amount", req.Amount.Decimal.String()),
			zap.Error(err))
		return 0, StorageError("Failed to record transaction", err)
	}

	return id, nil
}

// UpdateTransactionStatus moves the record identified by its chain hash to a new status
func (s *LedgerService) UpdateTransactionStatus(ctx context.Context, req models.UpdateStatusRequest) error {
	hash := strings.TrimSpace(req.TransactionHash)
	if hash == "" || req.Status == "" {
		return ValidationError("Missing transaction_hash or status")
	}

	status, err := models.ParseTransactionStatus(req.Status)
	if err != nil {
		return ValidationError("Invalid status: %s", req.Status)
	}

	var confirmations int64
	if req.Confirmations != nil {
		confirmations = *req.Confirmations
	}
	if confirmations < 0 {
		return ValidationError("confirmations cannot be negative")
	}

	err = s.store.UpdateTransactionStatus(ctx, store.StatusUpdateParams{
		TransactionHash:     hash,
		Status:              status,
		Confirmations:       confirmations,
		BlockNumber:         req.BlockNumber,
		BlockHash:           req.BlockHash,
		TransactionIndex:    req.TransactionIndex,
		GasUsed:             req.GasUsed,
		GasCost:             req.GasCost,
		ErrorMessage:        req.ErrorMessage,
		BlockchainTimestamp: req.BlockchainTimestamp,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrTransactionNotFound):
		return NotFoundError("Transaction not found", err)
	case errors.Is(err, store.ErrTerminalStatus):
		return ConflictError("Transaction status cannot change once completed or failed", err)
	default:
		zap.L().Error("Failed to update transaction status",
			zap.String("transaction_hash", hash),
			zap.String("status", req.Status),
			zap.Error(err))
		return StorageError("Failed to update transaction", err)
	}
}

// GetTransactionHistory returns one page of the user's visible history.
// Limit is clamped to [1, MaxHistoryLimit] and a negative offset becomes 0.
func (s *LedgerService) GetTransactionHistory(ctx context.Context, query models.HistoryQuery) (*models.TransactionPage, error) {
	if query.UserId <= 0 {
		return nil, ValidationError("Missing user_id")
	}
	if query.WalletAddress != "" && !common.IsHexAddress(query.WalletAddress) {
		return nil, ValidationError("Invalid wallet_address: %s", query.WalletAddress)
	}

	var transactionType models.TransactionType
	if query.Type != "" {
		parsed, err := models.ParseTransactionType(query.Type)
		if err != nil {
			return nil, ValidationError("Invalid type: %s", query.Type)
		}
		transactionType = parsed
	}

	limit := clamp(query.Limit, 1, MaxHistoryLimit)
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	if query.WalletAddress != "" {
		zap.L().Debug("History requested for wallet",
			zap.Int64("user_id", int64(query.UserId)),
			zap.String("wallet_address", common.HexToAddress(query.WalletAddress).Hex()))
	}

	transactions, total, err := s.store.GetTransactionHistory(ctx, store.HistoryFilter{
		UserId: query.UserId,
		Type:   transactionType,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		zap.L().Error("Failed to get transaction history",
			zap.Int64("user_id", int64(query.UserId)),
			zap.Error(err))
		return nil, StorageError("Failed to fetch transactions", err)
	}

	return &models.TransactionPage{
		Transactions: transactions,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
