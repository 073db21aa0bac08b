package optionrank

import (
	"sort"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
)

// RankedOptions упорядоченный список вариантов для показа оператору
// DefaultIndex - индекс варианта, выбираемого по умолчанию, или -1
type RankedOptions struct {
	Options      []*domain.Option
	DefaultIndex int
}

// Rank сливает три категории вариантов в один упорядоченный список
// и определяет выбор по умолчанию. Функция чистая и детерминированная:
// одинаковый вход всегда дает одинаковый результат
//
// Порядок: сначала все одно-сегментные варианты в порядке резолвера
// (его внутренний priority считается доверенным), затем не более
// transferCap transfer-вариантов из объединения same-type и mixed,
// отсортированных по возрастанию цены, при равенстве - по количеству
// переездов. Ограничение transferCap - политика отображения, чтобы
// не зашумлять выдачу, при этом самые дешевые планы всегда всплывают
//
// Выбор по умолчанию: первый single, иначе первый same-type transfer,
// иначе первый mixed transfer, иначе никакой. Вычисляется один раз
// на результат поиска, не на каждую перерисовку
func Rank(set *domain.OptionSet, transferCap int) RankedOptions {
	if set == nil {
		return RankedOptions{Options: []*domain.Option{}, DefaultIndex: -1}
	}
	if transferCap <= 0 {
		transferCap = domain.DefaultTransferDisplayCap
	}

	ordered := make([]*domain.Option, 0, len(set.SingleRoom)+transferCap)
	ordered = append(ordered, set.SingleRoom...)

	transfers := make([]*domain.Option, 0, len(set.SameTypeTransfer)+len(set.MixedTypeTransfer))
	transfers = append(transfers, set.SameTypeTransfer...)
	transfers = append(transfers, set.MixedTypeTransfer...)

	sort.SliceStable(transfers, func(i, j int) bool {
		if transfers[i].TotalPrice != transfers[j].TotalPrice {
			return transfers[i].TotalPrice < transfers[j].TotalPrice
		}
		return transfers[i].TransferCount() < transfers[j].TransferCount()
	})

	if len(transfers) > transferCap {
		transfers = transfers[:transferCap]
	}
	ordered = append(ordered, transfers...)

	return RankedOptions{
		Options:      ordered,
		DefaultIndex: defaultIndex(set, ordered),
	}
}

// defaultIndex находит индекс выбора по умолчанию в упорядоченном списке
func defaultIndex(set *domain.OptionSet, ordered []*domain.Option) int {
	var preferred *domain.Option
	switch {
	case len(set.SingleRoom) > 0:
		preferred = set.SingleRoom[0]
	case len(set.SameTypeTransfer) > 0:
		preferred = set.SameTypeTransfer[0]
	case len(set.MixedTypeTransfer) > 0:
		preferred = set.MixedTypeTransfer[0]
	default:
		return -1
	}

	for i, opt := range ordered {
		if opt == preferred {
			return i
		}
	}
	// Предпочтительный вариант отрезан политикой отображения -
	// по умолчанию выбирается первый показанный
	if len(ordered) > 0 {
		return 0
	}
	return -1
}
