package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{
			name:    "Корейский адрес проходит",
			address: "서울시 강남구 테헤란로 123",
			want:    true,
		},
		{
			name:    "Хангыль с цифрами и дефисами проходит",
			address: "마포구 월드컵로 45-2, 301호",
			want:    true,
		},
		{
			name:    "Адрес латиницей отклоняется",
			address: "Gangnam-daero 123",
			want:    false,
		},
		{
			name:    "Смешанный адрес с латиницей отклоняется",
			address: "서울시 Gangnam 123",
			want:    false,
		},
		{
			name:    "Адрес кириллицей отклоняется",
			address: "서울시 улица Ленина",
			want:    false,
		},
		{
			name:    "Пустая строка отклоняется",
			address: "   ",
			want:    false,
		},
		{
			name:    "Только цифры отклоняются",
			address: "12345",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, isValidAddress(tt.address))
		})
	}
}

func TestIsValidPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		priceKRW int64
		want     bool
	}{
		{name: "Нижняя граница включительно", priceKRW: 1_000, want: true},
		{name: "Верхняя граница включительно", priceKRW: 300_000, want: true},
		{name: "Обычная цена", priceKRW: 4_000, want: true},
		{name: "Ниже минимума", priceKRW: 999, want: false},
		{name: "Выше максимума", priceKRW: 300_001, want: false},
		{name: "Ноль", priceKRW: 0, want: false},
		{name: "Отрицательная", priceKRW: -4_000, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, isValidPrice(tt.priceKRW))
		})
	}
}
