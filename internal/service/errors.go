package service

import "errors"

// Domain errors surfaced to handlers, which map them onto HTTP statuses
var (
	ErrDuplicateEmail      = errors.New("email sudah dipakai")
	ErrInvalidCredentials  = errors.New("password salah")
	ErrDuplicateTagihan    = errors.New("tagihan bulan ini sudah ada")
	ErrInvalidMeterReading = errors.New("meter akhir tidak boleh lebih kecil dari meter awal")
	ErrInvalidVerifikasi   = errors.New("tagihan tidak sedang menunggu verifikasi")
	ErrMissingFields       = errors.New("data tidak lengkap")
	ErrMissingFile         = errors.New("file gambar wajib diisi")
	ErrNotOwner            = errors.New("bukan pemilik data")
	ErrUnknownAction       = errors.New("aksi verifikasi tidak dikenal")
)
