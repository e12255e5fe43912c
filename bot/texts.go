package bot

// Fixed candidate lists for the randomized greeting and farewell lines.
var greetings = []string{
	"Хэлоу",
	"Намасте",
	"Асалам алейкум",
	"Коничива",
	"Нихао",
	"Привет",
	"Бонжорно",
	"Салют",
}

var farewells = []string{
	"Возвращайся, если передумаешь",
	"Китайская еда - тоже вариант",
	"Ланчбокс - тоже вариант",
	"Не есть - не вариант",
}

const (
	textChooseFromMenu = "Выберите позицию из меню:"
	textEmptyCart      = "Ваш заказ пуст!"
	textNoActiveOrder  = "У вас нет активных заказов!"
	textNoOrdersYet    = "Заказов пока нет."
	textChooseRemoval  = "Выберите позицию заказа для удаления:"
	textPressStart     = "Отправьте /start, чтобы начать заказ."
)

const (
	labelChoose    = "Выбрать"
	labelCancel    = "Отмена"
	labelMakeOrder = "Сделать заказ"
	labelChange    = "Изменить заказ"
	labelAllOrders = "Посмотреть все заказы"
	labelMenu      = "Меню"
)
