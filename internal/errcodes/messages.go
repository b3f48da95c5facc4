package errcodes

// Common messages
const (
	MsgBadRequest    = "Solicitud incorrecta. Verificá los datos ingresados"
	MsgInternalError = "Error interno del servidor. Intentá nuevamente más tarde"
	MsgConnection    = "Error de conexión. Verificá tu conexión a internet"
	MsgDefault       = "Ha ocurrido un error. Intentá nuevamente"

	MsgInvalidUserType = "Tipo de usuario no válido"
)

var endpointMessages = map[Endpoint]map[Code]string{
	Login: {
		Success:       "Inicio de sesión exitoso",
		BadRequest:    MsgBadRequest,
		NotFound:      "Usuario o contraseña incorrectos",
		InternalError: MsgInternalError,
	},
	RegisterCandidate: {
		Success:               "Registro exitoso",
		BadRequest:            MsgBadRequest,
		UserAlreadyRegistered: "El usuario ya está registrado",
		IncorrectDataLength:   "Longitud de datos incorrecta",
		InternalError:         MsgInternalError,
	},
	RegisterEmployer: {
		Success:               "Registro exitoso",
		BadRequest:            MsgBadRequest,
		NotFound:              "Empresa no encontrada",
		UserAlreadyRegistered: "El usuario ya está registrado",
		InternalError:         MsgInternalError,
	},
	GetCompanies: {
		Success:       "Empresas obtenidas correctamente",
		BadRequest:    MsgBadRequest,
		InternalError: MsgInternalError,
	},
	GetSkills: {
		Success:       "Habilidades obtenidas correctamente",
		BadRequest:    MsgBadRequest,
		InternalError: MsgInternalError,
	},
	GetAvailableJobs: {
		Success:       "Trabajos obtenidos correctamente",
		BadRequest:    MsgBadRequest,
		InternalError: MsgInternalError,
	},
	GetLocations: {
		Success:       "Ubicaciones obtenidas correctamente",
		BadRequest:    MsgBadRequest,
		InternalError: MsgInternalError,
	},
}
