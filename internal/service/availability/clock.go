package availability

import (
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// Тексты и CTA-ссылки бейджа. Ссылки ведут в WhatsApp с заранее
// заготовленным сообщением, как на витрине.
const (
	labelOpen        = "Abierto ahora"
	labelClosed      = "Cerrado"
	labelOpeningSoon = "Abre pronto"
	labelClosingSoon = "Cierra pronto"
	labelSoldOut     = "Agotado por hoy"

	subtextClosingSoon = "Apresúrate, no te quedes sin tu pizza"
	subtextSoldOut     = "Se acabaron las masas por hoy"

	subtextSeeYouToday    = "Nos vemos hoy a las 19:00"
	subtextSeeYouThursday = "Nos vemos el Jueves"
	subtextSeeYouTomorrow = "Nos vemos mañana"

	linkOrderNow   = "https://wa.me/" + domain.WhatsAppNumber + "?text=Hola,%20quiero%20pedir%20una%20pizza"
	linkPreorder   = "https://wa.me/" + domain.WhatsAppNumber + "?text=Hola,%20me%20gustar%C3%ADa%20preordenar%20una%20pizza"
	linkLastCall   = "https://wa.me/" + domain.WhatsAppNumber + "?text=Hola,%20me%20gustar%C3%ADa%20pedir%20antes%20de%20que%20cierren"
	linkReschedule = "https://wa.me/" + domain.WhatsAppNumber + "?text=Hola,%20me%20gustar%C3%ADa%20agendar%20un%20pedido%20para%20otro%20d%C3%ADa"
)

// Derive выводит состояние магазина из момента времени и счетчиков продаж.
// Чистая функция: никакого I/O, одинаковый вход - одинаковый выход.
//
// Приоритет проверок (первое совпадение выигрывает):
//  1. sold-out: рабочий день и продано >= лимита. Проверяется раньше
//     временных окон - распроданный магазин показывает sold-out даже
//     внутри номинального окна работы.
//  2. opening-soon: рабочий день, 18:00-19:00
//  3. closing-soon: рабочий день, 22:30-23:00
//  4. open: рабочий день, 19:00-23:00
//  5. closed: всё остальное, с подсказкой о следующем открытии
func Derive(now time.Time, unitsSold, capacity int) domain.AvailabilityState {
	day := now.Weekday()
	t := domain.FractionalHour(now)
	serviceDay := domain.IsServiceDay(day)

	if serviceDay && unitsSold >= capacity {
		return domain.AvailabilityState{
			Status:  domain.StatusSoldOut,
			Label:   labelSoldOut,
			Subtext: subtextSoldOut + ". " + nextServiceMessage(day, t, false),
			Color:   "purple",
			CTA: &domain.CallToAction{
				Label: "Agenda tu pedido",
				Link:  linkReschedule,
			},
		}
	}

	if serviceDay && t >= domain.PreOpenHour && t < domain.OpenHour {
		return domain.AvailabilityState{
			Status: domain.StatusOpeningSoon,
			Label:  labelOpeningSoon,
			Color:  "yellow",
			CTA: &domain.CallToAction{
				Label: "Preordenar",
				Link:  linkPreorder,
			},
		}
	}

	if serviceDay && t >= domain.LastCallHour && t < domain.CloseHour {
		return domain.AvailabilityState{
			Status:  domain.StatusClosingSoon,
			Label:   labelClosingSoon,
			Subtext: subtextClosingSoon,
			Color:   "orange",
			CTA: &domain.CallToAction{
				Label: "Pide ahora",
				Link:  linkLastCall,
			},
		}
	}

	if serviceDay && t >= domain.OpenHour && t < domain.CloseHour {
		return domain.AvailabilityState{
			Status: domain.StatusOpen,
			Label:  labelOpen,
			Color:  "green",
			CTA: &domain.CallToAction{
				Label: "Pide ya",
				Link:  linkOrderNow,
			},
		}
	}

	return domain.AvailabilityState{
		Status:  domain.StatusClosed,
		Label:   labelClosed,
		Subtext: nextServiceMessage(day, t, true),
		Color:   "red",
	}
}

// nextServiceMessage возвращает подсказку о следующем окне работы.
// includeToday=false используется для sold-out: сегодняшнее окно уже
// не предложить, даже если оно формально впереди.
func nextServiceMessage(day time.Weekday, t float64, includeToday bool) string {
	// Рабочий день до начала pre-open окна: открываемся еще сегодня
	if includeToday && domain.IsServiceDay(day) && t < domain.PreOpenHour {
		return subtextSeeYouToday
	}

	switch day {
	case time.Monday, time.Tuesday, time.Wednesday:
		return subtextSeeYouThursday
	case time.Sunday:
		// После закрытия в воскресенье следующее окно - четверг
		return subtextSeeYouThursday
	case time.Thursday, time.Friday, time.Saturday:
		if t >= domain.CloseHour || !includeToday {
			return subtextSeeYouTomorrow
		}
	}

	return subtextSeeYouThursday
}
