// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ExistsError("already initialised")
	CertificateFileExists     = ExistsError("certificate file already exists")
	ClassifierTimeout         = ProcessError("classifier timed out")
	ClassifierUnavailable     = ProcessError("classifier unavailable")
	CorpusUnavailable         = NotFoundError("corpus unavailable")
	DatabaseIsNotSet          = ProcessError("database handle is not set")
	IncompatibleDatabase      = InvalidError("incompatible database version")
	InvalidChain              = InvalidError("invalid chain")
	InvalidClassifierBuckets  = InvalidError("invalid classifier score buckets")
	InvalidClassifierKind     = InvalidError("invalid classifier kind")
	InvalidClassifierResponse = InvalidError("invalid classifier response")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidDecision           = InvalidError("invalid similarity decision")
	InvalidDigestLength       = LengthError("invalid digest length")
	InvalidDocumentID         = InvalidError("invalid corpus document identifier")
	InvalidIpAddress          = InvalidError("invalid IP address")
	InvalidPackVersion        = RecordError("invalid record pack version")
	InvalidPortNumber         = InvalidError("invalid port number")
	InvalidPrivateKeyFile     = InvalidError("invalid private key file")
	InvalidPublicKeyFile      = InvalidError("invalid public key file")
	InvalidRecordLength       = RecordError("invalid record length")
	InvalidScore              = InvalidError("authorship score must be finite")
	InvalidStructPointer      = InvalidError("invalid struct pointer")
	InvalidThreshold          = InvalidError("similarity threshold must be in [0, 1]")
	InvalidTimestamp          = RecordError("invalid record timestamp")
	KeyFileExists             = ExistsError("key file already exists")
	LedgerHalted              = ProcessError("ledger halted: chain failed validation")
	MissingGenesis            = RecordError("missing genesis record")
	MissingParameters         = InvalidError("missing parameters")
	NotAvailable              = ProcessError("not available until ledger verified")
	NotInitialised            = NotFoundError("not initialised")
	RateLimiting              = InvalidError("rate limiting")
	RecordNotFound            = NotFoundError("record not found")
	TextTooLarge              = LengthError("manuscript text too large")
	TruncatedRecord           = RecordError("truncated record")
	UnexpectedRecordIndex     = RecordError("unexpected record index")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
