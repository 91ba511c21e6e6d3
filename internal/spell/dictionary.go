package spell

// misspellings maps frequent wrong forms of traffic vocabulary to their
// canonical spelling. Keys are folded (lowercase, no diacritics); values
// are returned verbatim to the user. The list comes from query logs of
// the public lookup service and is data, not behavior: a dictionary hit
// is only honored when the canonical form exists in the live catalog.
var misspellings = map[string]string{
	// álcool / bafômetro
	"alcol":      "alcool",
	"alccol":     "alcool",
	"alcohol":    "alcool",
	"aucool":     "alcool",
	"bafometro":  "bafometro",
	"bafrometro": "bafometro",
	"bafomentro": "bafometro",
	"etilometro": "etilometro",
	"embreaguez": "embriaguez",
	"embriagues": "embriaguez",

	// velocidade / radar
	"velocidad":   "velocidade",
	"velosidade":  "velocidade",
	"velocidades": "velocidade",
	"velociade":   "velocidade",
	"hadar":       "radar",
	"randar":      "radar",
	"exceso":      "excesso",
	"ecesso":      "excesso",
	"escesso":     "excesso",

	// documentos
	"habilitacao":    "habilitacao",
	"abilitacao":     "habilitacao",
	"habilitaçao":    "habilitacao",
	"habilitasao":    "habilitacao",
	"licensiamento":  "licenciamento",
	"lincenciamento": "licenciamento",
	"licenciamneto":  "licenciamento",
	"documeto":       "documento",
	"documnento":     "documento",
	"carteria":       "carteira",
	"cateira":        "carteira",

	// estacionamento
	"estacionar":     "estacionar",
	"estacioanar":    "estacionar",
	"estacionr":      "estacionar",
	"extacionar":     "estacionar",
	"estacionamneto": "estacionamento",
	"estacionamemto": "estacionamento",
	"estaciomento":   "estacionamento",

	// equipamentos
	"peliculla":   "pelicula",
	"pelicola":    "pelicula",
	"pelyicula":   "pelicula",
	"insufilm":    "pelicula",
	"insulfilm":   "pelicula",
	"capasete":    "capacete",
	"capacte":     "capacete",
	"capaçete":    "capacete",
	"sinto":       "cinto",
	"cinte":       "cinto",
	"farois":      "farol",
	"farou":       "farol",
	"pneus":       "pneu",
	"extintorr":   "extintor",
	"estintor":    "extintor",
	"retrovizor":  "retrovisor",
	"retrovisores": "retrovisor",

	// sinalização
	"semafaro":    "semaforo",
	"semafro":     "semaforo",
	"cemaforo":    "semaforo",
	"sinaleira":   "semaforo",
	"sinalizacao": "sinalizacao",
	"sinalisacao": "sinalizacao",
	"sinalizaçao": "sinalizacao",
	"plca":        "placa",
	"palca":       "placa",
	"fixa":        "faixa",
	"faxia":       "faixa",

	// condução
	"dirijir":       "dirigir",
	"dirigi":        "dirigir",
	"diriguir":      "dirigir",
	"condusir":      "conduzir",
	"condizir":      "conduzir",
	"ultrapasagem":  "ultrapassagem",
	"utrapassagem":  "ultrapassagem",
	"ultrapassajem": "ultrapassagem",
	"manobre":       "manobra",
	"retorno":       "retorno",
	"contramao":     "contramao",
	"contra mao":    "contramao",

	// pedestres
	"pedreste":  "pedestre",
	"perdestre": "pedestre",
	"pedrestre": "pedestre",
	"calcada":   "calcada",
	"calsada":   "calcada",
	"travesia":  "travessia",

	// infração / multa
	"infracao":   "infracao",
	"infraçao":   "infracao",
	"infrassao":  "infracao",
	"infracão":   "infracao",
	"enfracao":   "infracao",
	"mutla":      "multa",
	"mulata":     "multa",
	"multas":     "multa",
	"gravissima": "gravissima",
	"gravisima":  "gravissima",
	"pontucao":   "pontuacao",
	"pontuaçao":  "pontuacao",

	// veículos
	"veiculo":     "veiculo",
	"viculo":      "veiculo",
	"veicolo":     "veiculo",
	"motosicleta": "motocicleta",
	"motocileta":  "motocicleta",
	"moticicleta": "motocicleta",
	"bicicletta":  "bicicleta",
	"onibuz":      "onibus",
	"caminhao":    "caminhao",
	"camihao":     "caminhao",

	// celular / equipamento do condutor
	"celuar":   "celular",
	"celullar": "celular",
	"telefone": "celular",
	"capacet":  "capacete",

	// vias
	"rodovia":     "rodovia",
	"rodivia":     "rodovia",
	"acostamneto": "acostamento",
	"acostameto":  "acostamento",
	"cruzameto":   "cruzamento",
	"cruzamneto":  "cruzamento",
	"preferencial": "preferencial",
	"perferencial": "preferencial",
}
