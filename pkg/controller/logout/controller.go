package logout

type Controller struct {
	param        *Param
	store        SettingsRemover
	tokenManager TokenManager
}

func New(param *Param, store SettingsRemover, tokenManager TokenManager) *Controller {
	return &Controller{
		param:        param,
		store:        store,
		tokenManager: tokenManager,
	}
}

type Param struct {
	KeyringEnabled bool
}

type SettingsRemover interface {
	Remove() error
}

type TokenManager interface {
	RemoveAPIKey() error
}
