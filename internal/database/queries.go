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

package database

const (
	transactionColumns = `
		id, sender_id, receiver_id, sender_email, receiver_email, amount, memo,
		transaction_hash, transaction_type, status, confirmations, block_number,
		block_hash, transaction_index, gas_used, gas_cost, error_message,
		blockchain_timestamp, created_at, updated_at`

	// Visible to the user: their own pending sends plus completed transfers on either side.
	historyVisibility = `
		((status = 'pending' AND sender_id = ?)
		  OR (status = 'completed' AND (sender_id = ? OR receiver_id = ?)))
		AND (? = '' OR transaction_type = ?)`

	// Transaction queries
	queryInsertTransaction = `
		INSERT INTO transactions (sender_id, receiver_id, sender_email, receiver_email, amount, memo,
			transaction_hash, transaction_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	// Compare-and-swap on the current status: pending moves anywhere, a terminal status only replays itself.
	queryUpdateTransactionStatus = `
		UPDATE transactions
		SET status = ?, confirmations = ?, block_number = ?, block_hash = ?, transaction_index = ?,
			gas_used = ?, gas_cost = ?, error_message = ?, blockchain_timestamp = ?, updated_at = ?
		WHERE transaction_hash = ? AND status IN ('pending', ?)`

	queryGetTransactionStatusByHash = `
		SELECT status
		FROM transactions
		WHERE transaction_hash = ?`

	queryGetTransactionHistory = `
		SELECT` + transactionColumns + `
		FROM transactions
		WHERE` + historyVisibility + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	queryCountTransactionHistory = `
		SELECT COUNT(*)
		FROM transactions
		WHERE` + historyVisibility

	queryGetCompletedTransactionsBetween = `
		SELECT` + transactionColumns + `
		FROM transactions
		WHERE status = 'completed' AND created_at >= ? AND created_at < ?
		ORDER BY id`

	// Pending view queries
	queryGetPendingTransactions = `
		SELECT id, user_id, receiver_id, sender_email, receiver_email, amount, memo,
			transaction_hash, transaction_type, created_at, updated_at
		FROM pending_transactions
		WHERE (CAST(? AS BIGINT) = 0 OR user_id = ?)
		ORDER BY created_at ASC, id ASC`

	// Summary queries
	queryGetTransactionSummaries = `
		SELECT user_id, summary_date, total_transactions, incoming_count, outgoing_count,
			total_incoming, total_outgoing, total_gas_fees, net_amount,
			send_count, receive_count, faucet_count, betting_count, contract_count
		FROM transaction_summaries
		WHERE user_id = ? AND summary_date >= ?
		ORDER BY summary_date DESC`

	queryDeleteTransactionSummariesForDay = `
		DELETE FROM transaction_summaries
		WHERE summary_date = ?`

	queryInsertTransactionSummary = `
		INSERT INTO transaction_summaries (user_id, summary_date, total_transactions, incoming_count,
			outgoing_count, total_incoming, total_outgoing, total_gas_fees, net_amount,
			send_count, receive_count, faucet_count, betting_count, contract_count)
		VALUES (:user_id, :summary_date, :total_transactions, :incoming_count,
			:outgoing_count, :total_incoming, :total_outgoing, :total_gas_fees, :net_amount,
			:send_count, :receive_count, :faucet_count, :betting_count, :contract_count)`
)
