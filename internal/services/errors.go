package services

import "errors"

// Common service errors. Messages are shown to the operator as-is.
var (
	ErrNotFound        = errors.New("data tidak ditemukan")
	ErrInvalidInput    = errors.New("data tidak valid")
	ErrAlreadyRecorded = errors.New("pembayaran untuk pelanggan ini sudah tercatat pada periode tersebut")
	ErrProofTooLarge   = errors.New("ukuran foto bukti terlalu besar")
	ErrProofExpired    = errors.New("bukti pembayaran sudah kedaluwarsa")
	ErrInvalidToken    = errors.New("tautan bukti tidak valid atau sudah kedaluwarsa")
	ErrUnavailable     = errors.New("data tidak dapat dimuat, periksa koneksi lalu coba lagi")
)
