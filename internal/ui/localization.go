package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyLibraryPath        = "library_path"
	KeyDownloadDirectory  = "download_directory"
	KeyMaxParallel        = "max_parallel"
	KeyCoverSize          = "cover_size"
	KeyShowAllEpisodes    = "show_all_episodes"
	KeyShowSections       = "show_sections"
	KeyShowDescriptions   = "show_descriptions"
	KeyLogLevel           = "log_level"
	KeyAutoReveal         = "auto_reveal"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeyRestartRequired    = "restart_required"
	KeySettingsSaved      = "settings_saved"
	KeySubscribe          = "subscribe"
	KeySubscribing        = "subscribing"
	KeySubscribed         = "subscribed"
	KeyAlreadySubscribed  = "already_subscribed"
	KeyEnterFeedURL       = "enter_feed_url"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyInvalidURL         = "invalid_url"
	KeyRefresh            = "refresh"
	KeyRefreshing         = "refreshing"
	KeyNewEpisodes        = "new_episodes"
	KeyRefreshFailed      = "refresh_failed"
	KeySearch             = "search"
	KeySearchPodcasts     = "search_podcasts"
	KeyViewAll            = "view_all"
	KeyViewUndeleted      = "view_undeleted"
	KeyViewDownloaded     = "view_downloaded"
	KeyViewUnplayed       = "view_unplayed"
	KeySortPublished      = "sort_published"
	KeySortTitle          = "sort_title"
	KeySortSize           = "sort_size"
	KeySortDuration       = "sort_duration"
	KeyDescending         = "descending"
	KeyPodcasts           = "podcasts"
	KeyEpisodes           = "episodes"
	KeyNoEpisodes         = "no_episodes"
	KeyAllEpisodes        = "all_episodes"
	KeyDownload           = "download"
	KeyPause              = "pause"
	KeyContinue           = "continue"
	KeyStop               = "stop"
	KeyOpen               = "open"
	KeyReveal             = "reveal"
	KeyCopyPath           = "copy_path"
	KeyPathCopied         = "path_copied"
	KeyDownloadStarted    = "download_started"
	KeyDownloadCompleted  = "download_completed"
	KeyDownloadFailed     = "download_failed"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyUnsubscribe        = "unsubscribe"
	KeyPauseSubscription  = "pause_subscription"
	KeyResumeSubscription = "resume_subscription"
	KeySetSection         = "set_section"
	KeySection            = "section"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; unknown codes are ignored
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key, falling back to
// English and then to the key itself
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Podshelf",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyLibraryPath:        "Library File",
		KeyDownloadDirectory:  "Download Directory",
		KeyMaxParallel:        "Max Parallel Downloads",
		KeyCoverSize:          "Cover Size",
		KeyShowAllEpisodes:    "Show \"All episodes\"",
		KeyShowSections:       "Group podcasts by section",
		KeyShowDescriptions:   "Show episode descriptions",
		KeyLogLevel:           "Log Level",
		KeyAutoReveal:         "Reveal downloads when complete",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeyRestartRequired:    "Restart to use the new library file",
		KeySettingsSaved:      "Settings saved successfully!",
		KeySubscribe:          "Subscribe",
		KeySubscribing:        "Subscribing...",
		KeySubscribed:         "Subscribed",
		KeyAlreadySubscribed:  "Already subscribed",
		KeyEnterFeedURL:       "Enter podcast feed URL (https://example.com/feed.xml)",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeyInvalidURL:         "Invalid URL",
		KeyRefresh:            "Refresh",
		KeyRefreshing:         "Checking for new episodes...",
		KeyNewEpisodes:        "New episodes",
		KeyRefreshFailed:      "Some feeds could not be updated",
		KeySearch:             "Search episodes",
		KeySearchPodcasts:     "Search podcasts",
		KeyViewAll:            "All episodes",
		KeyViewUndeleted:      "Hide deleted",
		KeyViewDownloaded:     "Downloaded",
		KeyViewUnplayed:       "Unplayed",
		KeySortPublished:      "Released",
		KeySortTitle:          "Title",
		KeySortSize:           "Size",
		KeySortDuration:       "Duration",
		KeyDescending:         "Newest first",
		KeyPodcasts:           "Podcasts",
		KeyEpisodes:           "Episodes",
		KeyNoEpisodes:         "No episodes in this view",
		KeyAllEpisodes:        "All episodes",
		KeyDownload:           "Download",
		KeyPause:              "Pause",
		KeyContinue:           "Continue",
		KeyStop:               "Stop",
		KeyOpen:               "Open",
		KeyReveal:             "Reveal",
		KeyCopyPath:           "Copy path",
		KeyPathCopied:         "Path copied to clipboard",
		KeyDownloadStarted:    "Download started",
		KeyDownloadCompleted:  "Download completed",
		KeyDownloadFailed:     "Download failed",
		KeyErrorOpeningFile:   "Error opening file",
		KeyUnsubscribe:        "Unsubscribe",
		KeyPauseSubscription:  "Pause subscription",
		KeyResumeSubscription: "Resume subscription",
		KeySetSection:         "Set section...",
		KeySection:            "Section",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Podshelf",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyLibraryPath:        "Файл библиотеки",
		KeyDownloadDirectory:  "Папка загрузки",
		KeyMaxParallel:        "Макс. параллельных",
		KeyCoverSize:          "Размер обложки",
		KeyShowAllEpisodes:    "Показывать «Все выпуски»",
		KeyShowSections:       "Группировать подкасты по разделам",
		KeyShowDescriptions:   "Показывать описания выпусков",
		KeyLogLevel:           "Уровень журнала",
		KeyAutoReveal:         "Показывать файл после загрузки",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeyRestartRequired:    "Перезапустите приложение, чтобы открыть новую библиотеку",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeySubscribe:          "Подписаться",
		KeySubscribing:        "Подписка...",
		KeySubscribed:         "Подписка оформлена",
		KeyAlreadySubscribed:  "Вы уже подписаны",
		KeyEnterFeedURL:       "Введите URL ленты подкаста (https://example.com/feed.xml)",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL",
		KeyInvalidURL:         "Неверный URL",
		KeyRefresh:            "Обновить",
		KeyRefreshing:         "Проверка новых выпусков...",
		KeyNewEpisodes:        "Новые выпуски",
		KeyRefreshFailed:      "Не удалось обновить некоторые ленты",
		KeySearch:             "Поиск выпусков",
		KeySearchPodcasts:     "Поиск подкастов",
		KeyViewAll:            "Все выпуски",
		KeyViewUndeleted:      "Скрыть удалённые",
		KeyViewDownloaded:     "Загруженные",
		KeyViewUnplayed:       "Непрослушанные",
		KeySortPublished:      "Дата выхода",
		KeySortTitle:          "Название",
		KeySortSize:           "Размер",
		KeySortDuration:       "Длительность",
		KeyDescending:         "Сначала новые",
		KeyPodcasts:           "Подкасты",
		KeyEpisodes:           "Выпуски",
		KeyNoEpisodes:         "Нет выпусков в этом виде",
		KeyAllEpisodes:        "Все выпуски",
		KeyDownload:           "Скачать",
		KeyPause:              "Пауза",
		KeyContinue:           "Продолжить",
		KeyStop:               "Стоп",
		KeyOpen:               "Открыть",
		KeyReveal:             "Показать",
		KeyCopyPath:           "Копировать путь",
		KeyPathCopied:         "Путь скопирован в буфер обмена",
		KeyDownloadStarted:    "Загрузка начата",
		KeyDownloadCompleted:  "Загрузка завершена",
		KeyDownloadFailed:     "Ошибка загрузки",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyUnsubscribe:        "Отписаться",
		KeyPauseSubscription:  "Приостановить подписку",
		KeyResumeSubscription: "Возобновить подписку",
		KeySetSection:         "Задать раздел...",
		KeySection:            "Раздел",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Podshelf",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyLibraryPath:        "Arquivo da biblioteca",
		KeyDownloadDirectory:  "Diretório de Download",
		KeyMaxParallel:        "Downloads Paralelos Máx.",
		KeyCoverSize:          "Tamanho da capa",
		KeyShowAllEpisodes:    "Mostrar \"Todos os episódios\"",
		KeyShowSections:       "Agrupar podcasts por seção",
		KeyShowDescriptions:   "Mostrar descrições dos episódios",
		KeyLogLevel:           "Nível de log",
		KeyAutoReveal:         "Mostrar arquivo ao concluir",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Procurar",
		KeyRestartRequired:    "Reinicie para usar o novo arquivo da biblioteca",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeySubscribe:          "Assinar",
		KeySubscribing:        "Assinando...",
		KeySubscribed:         "Assinatura adicionada",
		KeyAlreadySubscribed:  "Já assinado",
		KeyEnterFeedURL:       "Digite a URL do feed (https://example.com/feed.xml)",
		KeyPleaseEnterURL:     "Por favor, digite uma URL",
		KeyInvalidURL:         "URL inválida",
		KeyRefresh:            "Atualizar",
		KeyRefreshing:         "Procurando novos episódios...",
		KeyNewEpisodes:        "Novos episódios",
		KeyRefreshFailed:      "Alguns feeds não puderam ser atualizados",
		KeySearch:             "Buscar episódios",
		KeySearchPodcasts:     "Buscar podcasts",
		KeyViewAll:            "Todos os episódios",
		KeyViewUndeleted:      "Ocultar excluídos",
		KeyViewDownloaded:     "Baixados",
		KeyViewUnplayed:       "Não reproduzidos",
		KeySortPublished:      "Lançamento",
		KeySortTitle:          "Título",
		KeySortSize:           "Tamanho",
		KeySortDuration:       "Duração",
		KeyDescending:         "Mais novos primeiro",
		KeyPodcasts:           "Podcasts",
		KeyEpisodes:           "Episódios",
		KeyNoEpisodes:         "Nenhum episódio nesta visão",
		KeyAllEpisodes:        "Todos os episódios",
		KeyDownload:           "Baixar",
		KeyPause:              "Pausar",
		KeyContinue:           "Continuar",
		KeyStop:               "Parar",
		KeyOpen:               "Abrir",
		KeyReveal:             "Mostrar",
		KeyCopyPath:           "Copiar caminho",
		KeyPathCopied:         "Caminho copiado",
		KeyDownloadStarted:    "Download iniciado",
		KeyDownloadCompleted:  "Download concluído",
		KeyDownloadFailed:     "Falha no download",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyUnsubscribe:        "Cancelar assinatura",
		KeyPauseSubscription:  "Pausar assinatura",
		KeyResumeSubscription: "Retomar assinatura",
		KeySetSection:         "Definir seção...",
		KeySection:            "Seção",
	}
}
